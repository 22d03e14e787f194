package utils

import "context"

type contextValueKey string

const configurationFilePathValueKeyConstant = contextValueKey("configuration_file_path")

// CommandContextAccessor reads and writes values carried through command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath returns a context carrying the active configuration file path.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFilePathValueKeyConstant, configurationFilePath)
}

// ConfigurationFilePath reports the configuration file path stored in the
// context. An empty stored path means no configuration file was used and is
// reported as absent.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	storedValue, storedValueAvailable := executionContext.Value(configurationFilePathValueKeyConstant).(string)
	if !storedValueAvailable || len(storedValue) == 0 {
		return "", false
	}
	return storedValue, true
}
