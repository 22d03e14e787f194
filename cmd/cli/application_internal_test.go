package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	registrationFailureMessageConstant = "registration failed"
	registrationErrorSubtestName       = "executeSurfacesRegistrationError"
)

func TestExecuteSurfacesInitializationError(testInstance *testing.T) {
	testInstance.Run(registrationErrorSubtestName, func(subtest *testing.T) {
		registrationError := errors.New(registrationFailureMessageConstant)

		application := NewApplication()
		application.initializationError = registrationError

		executionError := application.Execute()
		require.ErrorIs(subtest, executionError, registrationError)
	})
}
