package rulesync

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cursorcult/rulesync/internal/githubapi"
	"github.com/cursorcult/rulesync/internal/githubauth"
	"github.com/cursorcult/rulesync/internal/rules/discovery"
	"github.com/cursorcult/rulesync/internal/utils"
)

const (
	commandNameConstant             = "sync"
	commandShortDescriptionConstant = "Reconcile ruleset manifests against GitHub"
	commandLongDescriptionConstant  = "sync validates every rule listed in rulesets/*.txt against the configured GitHub organization and removes entries whose repositories are missing, archived, forks, or lack the required version tag."

	flagCheckNameConstant               = "check"
	flagCheckDescriptionConstant        = "Report required removals without rewriting manifests; exits non-zero when drift is detected."
	flagRulesetsDirNameConstant         = "rulesets-dir"
	flagRulesetsDirDescriptionConstant  = "Directory containing ruleset manifest files."
	flagOrganizationNameConstant        = "organization"
	flagOrganizationDescriptionConstant = "GitHub organization that owns the rule repositories."
	flagRequiredTagNameConstant         = "required-tag"
	flagRequiredTagDescriptionConstant  = "Version tag every eligible rule repository must carry."
	flagTokenSourceNameConstant         = "token-source"
	flagTokenSourceDescriptionConstant  = "Token source declaration (env:NAME or file:PATH); defaults to probing GITHUB_TOKEN, GH_TOKEN, and GITHUB_API_TOKEN."
	flagAPIBaseURLNameConstant          = "api-base-url"
	flagAPIBaseURLDescriptionConstant   = "Override the GitHub API base URL (GitHub Enterprise installations)."
	missingTokenErrorMessageConstant    = "missing GitHub token: set GITHUB_TOKEN (or GH_TOKEN) or configure token_source"
	commandStartedLogMessageConstant    = "ruleset sync started"
	logFieldOrganizationNameConstant    = "organization"
	logFieldRequiredTagNameConstant     = "required_tag"
	logFieldRulesetsDirectoryConstant   = "rulesets_dir"
	logFieldCheckOnlyNameConstant       = "check_only"
	logFieldConfigurationFileConstant   = "config_file"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persisted configuration for the sync command.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the sync cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Discoverer            ManifestDiscoverer
	Validator             RuleValidator
	FileSystem            FileSystem
	TokenResolver         githubauth.TokenResolver
}

// Build constructs the cobra command for ruleset reconciliation.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().Bool(flagCheckNameConstant, false, flagCheckDescriptionConstant)
	command.Flags().String(flagRulesetsDirNameConstant, "", flagRulesetsDirDescriptionConstant)
	command.Flags().String(flagOrganizationNameConstant, "", flagOrganizationDescriptionConstant)
	command.Flags().String(flagRequiredTagNameConstant, "", flagRequiredTagDescriptionConstant)
	command.Flags().String(flagTokenSourceNameConstant, "", flagTokenSourceDescriptionConstant)
	command.Flags().String(flagAPIBaseURLNameConstant, "", flagAPIBaseURLDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	_ = arguments

	options := builder.resolveOptions(command)
	logger := builder.resolveLogger()

	startupFields := []zap.Field{
		zap.String(logFieldOrganizationNameConstant, options.Organization),
		zap.String(logFieldRequiredTagNameConstant, options.RequiredTag),
		zap.String(logFieldRulesetsDirectoryConstant, options.RulesetsDirectory),
		zap.Bool(logFieldCheckOnlyNameConstant, options.CheckOnly),
	}
	contextAccessor := utils.NewCommandContextAccessor()
	if configurationFilePath, configurationFilePathAvailable := contextAccessor.ConfigurationFilePath(command.Context()); configurationFilePathAvailable {
		startupFields = append(startupFields, zap.String(logFieldConfigurationFileConstant, configurationFilePath))
	}
	logger.Info(commandStartedLogMessageConstant, startupFields...)

	validator, validatorError := builder.resolveValidator(command, options)
	if validatorError != nil {
		return validatorError
	}

	discoverer := builder.Discoverer
	if discoverer == nil {
		discoverer = discovery.NewFilesystemManifestDiscoverer()
	}

	service, serviceError := NewService(discoverer, validator, builder.FileSystem, command.OutOrStdout(), logger)
	if serviceError != nil {
		return serviceError
	}

	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) resolveOptions(command *cobra.Command) CommandOptions {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider().sanitize()
	}

	options := CommandOptions{
		RulesetsDirectory: configuration.RulesetsDirectory,
		Organization:      configuration.Organization,
		RequiredTag:       configuration.RequiredTag,
		TokenSource:       configuration.TokenSource,
		APIBaseURL:        configuration.APIBaseURL,
	}

	if command == nil {
		return options
	}

	flagSet := command.Flags()
	options.CheckOnly, _ = flagSet.GetBool(flagCheckNameConstant)
	if flagSet.Changed(flagRulesetsDirNameConstant) {
		options.RulesetsDirectory, _ = flagSet.GetString(flagRulesetsDirNameConstant)
	}
	if flagSet.Changed(flagOrganizationNameConstant) {
		options.Organization, _ = flagSet.GetString(flagOrganizationNameConstant)
	}
	if flagSet.Changed(flagRequiredTagNameConstant) {
		options.RequiredTag, _ = flagSet.GetString(flagRequiredTagNameConstant)
	}
	if flagSet.Changed(flagTokenSourceNameConstant) {
		options.TokenSource, _ = flagSet.GetString(flagTokenSourceNameConstant)
	}
	if flagSet.Changed(flagAPIBaseURLNameConstant) {
		options.APIBaseURL, _ = flagSet.GetString(flagAPIBaseURLNameConstant)
	}

	return options
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveValidator(command *cobra.Command, options CommandOptions) (RuleValidator, error) {
	if builder.Validator != nil {
		return builder.Validator, nil
	}

	token, tokenError := builder.resolveTokenValue(command, options)
	if tokenError != nil {
		return nil, tokenError
	}

	client, clientError := githubapi.NewClientWithAPIBase(token, options.APIBaseURL)
	if clientError != nil {
		return nil, clientError
	}

	return githubapi.NewRepositoryValidator(client, githubapi.EligibilityPolicy{
		Organization: options.Organization,
		RequiredTag:  options.RequiredTag,
	})
}

func (builder *CommandBuilder) resolveTokenValue(command *cobra.Command, options CommandOptions) (string, error) {
	if len(options.TokenSource) > 0 {
		sourceConfiguration, parseError := githubauth.ParseTokenSource(options.TokenSource)
		if parseError != nil {
			return "", parseError
		}

		tokenResolver := builder.TokenResolver
		if tokenResolver == nil {
			tokenResolver = githubauth.NewTokenResolver(nil, nil)
		}
		return tokenResolver.ResolveToken(command.Context(), sourceConfiguration)
	}

	token, tokenFound := githubauth.ResolveToken(nil)
	if !tokenFound {
		return "", errors.New(missingTokenErrorMessageConstant)
	}
	return token, nil
}
