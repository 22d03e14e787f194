package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cursorcult/rulesync/internal/utils"
)

const (
	testEnvironmentPrefixConstant                  = "TESTRULESYNC"
	testSyncSectionKeyConstant                     = "sync"
	testOrganizationKeyConstant                    = testSyncSectionKeyConstant + ".organization"
	testDefaultOrganizationConstant                = "CursorCult"
	testConfiguredOrganizationConstant             = "AlternateOrg"
	testOverriddenOrganizationConstant             = "EnvironmentOrg"
	testConfigFileNameConstant                     = "config.yaml"
	testConfigContentTemplateConstant              = "sync:\n  organization: %s\n"
	testCaseDefaultsMessageConstant                = "defaults are applied"
	testCaseFileMessageConstant                    = "config file overrides defaults"
	testCaseEnvironmentMessageConstant             = "environment overrides file"
	testConfigurationNameConstant                  = "config"
	testConfigurationTypeConstant                  = "yaml"
	configurationLoaderSubtestNameTemplateConstant = "%d_%s"
)

type configurationFixture struct {
	Sync configurationSyncFixture `mapstructure:"sync"`
}

type configurationSyncFixture struct {
	Organization string `mapstructure:"organization"`
}

func TestConfigurationLoaderLoadConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name                    string
		fileOrganization        string
		environmentOrganization string
		expectedOrganization    string
	}{
		{
			name:                    testCaseDefaultsMessageConstant,
			fileOrganization:        "",
			environmentOrganization: "",
			expectedOrganization:    testDefaultOrganizationConstant,
		},
		{
			name:                    testCaseFileMessageConstant,
			fileOrganization:        testConfiguredOrganizationConstant,
			environmentOrganization: "",
			expectedOrganization:    testConfiguredOrganizationConstant,
		},
		{
			name:                    testCaseEnvironmentMessageConstant,
			fileOrganization:        testConfiguredOrganizationConstant,
			environmentOrganization: testOverriddenOrganizationConstant,
			expectedOrganization:    testOverriddenOrganizationConstant,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testCase := testCase
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(subtest *testing.T) {
			tempDirectory := subtest.TempDir()
			configurationFilePath := ""
			if len(testCase.fileOrganization) > 0 {
				configurationFilePath = filepath.Join(tempDirectory, testConfigFileNameConstant)
				configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testCase.fileOrganization)
				writeError := os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600)
				require.NoError(subtest, writeError)
			}

			if len(testCase.environmentOrganization) > 0 {
				environmentVariableName := fmt.Sprintf("%s_%s", testEnvironmentPrefixConstant, strings.ToUpper(strings.ReplaceAll(testOrganizationKeyConstant, ".", "_")))
				subtest.Setenv(environmentVariableName, testCase.environmentOrganization)
			}

			configurationLoader := utils.NewConfigurationLoader(
				testConfigurationNameConstant,
				testConfigurationTypeConstant,
				testEnvironmentPrefixConstant,
				[]string{tempDirectory},
			)

			defaultValues := map[string]any{
				testOrganizationKeyConstant: testDefaultOrganizationConstant,
			}

			var loadedFixture configurationFixture
			loadedMetadata, loadError := configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &loadedFixture)
			require.NoError(subtest, loadError)
			require.Equal(subtest, testCase.expectedOrganization, loadedFixture.Sync.Organization)

			if len(testCase.fileOrganization) > 0 {
				require.Equal(subtest, configurationFilePath, loadedMetadata.ConfigFileUsed)
			}
		})
	}
}
