package cli_test

import (
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/require"

	"github.com/cursorcult/rulesync/cmd/cli"
)

const (
	rootCommandNameConstant         = "rulesync"
	syncCommandNameConstant         = "sync"
	configuredLogLevelValue         = "debug"
	configuredLogFormatValue        = "console"
	configuredOrganizationValue     = "ExampleOrg"
	configuredRequiredTagValue      = "v2"
	configuredRulesetsDirValue      = "manifests"
	mapstructureTagNameConstant     = "mapstructure"
	rootCommandSubtestName          = "rootCommandExposesSyncSubcommand"
	configurationDecodeSubtestName  = "configurationDocumentDecodesIntoStruct"
)

func TestNewApplicationWiresRootCommand(testInstance *testing.T) {
	testInstance.Run(rootCommandSubtestName, func(subtest *testing.T) {
		application := cli.NewApplication()
		require.NotNil(subtest, application)

		rootCommand := application.RootCommand()
		require.NotNil(subtest, rootCommand)
		require.Equal(subtest, rootCommandNameConstant, rootCommand.Name())

		subcommandNames := make([]string, 0, len(rootCommand.Commands()))
		for _, subcommand := range rootCommand.Commands() {
			subcommandNames = append(subcommandNames, subcommand.Name())
		}
		require.Contains(subtest, subcommandNames, syncCommandNameConstant)
	})
}

func TestApplicationConfigurationDecodesFromDocument(testInstance *testing.T) {
	testInstance.Run(configurationDecodeSubtestName, func(subtest *testing.T) {
		configurationDocument := map[string]any{
			"common": map[string]any{
				"log_level":  configuredLogLevelValue,
				"log_format": configuredLogFormatValue,
			},
			"sync": map[string]any{
				"organization": configuredOrganizationValue,
				"required_tag": configuredRequiredTagValue,
				"rulesets_dir": configuredRulesetsDirValue,
			},
		}

		var decodedConfiguration cli.ApplicationConfiguration
		decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName: mapstructureTagNameConstant,
			Result:  &decodedConfiguration,
		})
		require.NoError(subtest, decoderError)
		require.NoError(subtest, decoder.Decode(configurationDocument))

		require.Equal(subtest, configuredLogLevelValue, decodedConfiguration.Common.LogLevel)
		require.Equal(subtest, configuredLogFormatValue, decodedConfiguration.Common.LogFormat)
		require.Equal(subtest, configuredOrganizationValue, decodedConfiguration.Sync.Organization)
		require.Equal(subtest, configuredRequiredTagValue, decodedConfiguration.Sync.RequiredTag)
		require.Equal(subtest, configuredRulesetsDirValue, decodedConfiguration.Sync.RulesetsDirectory)
	})
}
