package rulesync

import "strings"

const (
	defaultRulesetsDirectoryConstant = "rulesets"
	defaultOrganizationConstant      = "CursorCult"
	defaultRequiredTagConstant       = "v1"

	configurationRulesetsDirectoryKeyConstant = "rulesets_dir"
	configurationOrganizationKeyConstant      = "organization"
	configurationRequiredTagKeyConstant       = "required_tag"
	configurationTokenSourceKeyConstant       = "token_source"
	configurationAPIBaseURLKeyConstant        = "api_base_url"
	configurationKeySeparatorConstant         = "."
)

// CommandConfiguration captures persistent settings for the sync command.
type CommandConfiguration struct {
	RulesetsDirectory string `mapstructure:"rulesets_dir"`
	Organization      string `mapstructure:"organization"`
	RequiredTag       string `mapstructure:"required_tag"`
	TokenSource       string `mapstructure:"token_source"`
	APIBaseURL        string `mapstructure:"api_base_url"`
}

// DefaultCommandConfiguration returns baseline configuration values for the sync command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RulesetsDirectory: defaultRulesetsDirectoryConstant,
		Organization:      defaultOrganizationConstant,
		RequiredTag:       defaultRequiredTagConstant,
		TokenSource:       "",
		APIBaseURL:        "",
	}
}

// DefaultConfigurationValues produces Viper defaults for the sync command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationRulesetsDirectoryKeyConstant: defaults.RulesetsDirectory,
		rootKey + configurationKeySeparatorConstant + configurationOrganizationKeyConstant:      defaults.Organization,
		rootKey + configurationKeySeparatorConstant + configurationRequiredTagKeyConstant:       defaults.RequiredTag,
		rootKey + configurationKeySeparatorConstant + configurationTokenSourceKeyConstant:       defaults.TokenSource,
		rootKey + configurationKeySeparatorConstant + configurationAPIBaseURLKeyConstant:        defaults.APIBaseURL,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.RulesetsDirectory = strings.TrimSpace(configuration.RulesetsDirectory)
	if len(sanitized.RulesetsDirectory) == 0 {
		sanitized.RulesetsDirectory = defaultRulesetsDirectoryConstant
	}

	sanitized.Organization = strings.TrimSpace(configuration.Organization)
	if len(sanitized.Organization) == 0 {
		sanitized.Organization = defaultOrganizationConstant
	}

	sanitized.RequiredTag = strings.TrimSpace(configuration.RequiredTag)
	if len(sanitized.RequiredTag) == 0 {
		sanitized.RequiredTag = defaultRequiredTagConstant
	}

	sanitized.TokenSource = strings.TrimSpace(configuration.TokenSource)
	sanitized.APIBaseURL = strings.TrimSpace(configuration.APIBaseURL)

	return sanitized
}
