package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/coverui/internal/utils/path"
)

const (
	testConfigurationFileNameConstant = "config.yaml"
	testConfigurationContentConstant  = "common:\n  log_level: error\n  log_format: structured\nui:\n  color: always\n"
	testColorEnvironmentVariable      = "COVERUI_UI_COLOR"
	testServerPortConstant            = "8545"
	testServerLineConstant            = "> server:            " + testServerPortConstant + "\n"
)

func executeApplication(testInstance *testing.T, arguments ...string) (*Application, string, error) {
	testInstance.Helper()

	application := NewApplication()
	var outputBuffer bytes.Buffer
	application.rootCommand.SetOut(&outputBuffer)
	application.rootCommand.SetErr(&outputBuffer)
	application.rootCommand.SetArgs(append([]string{}, arguments...))

	executionError := application.Execute()
	return application, outputBuffer.String(), executionError
}

func TestApplicationCommonDefaultsApplied(testInstance *testing.T) {
	testInstance.Chdir(testInstance.TempDir())

	application, _, executionError := executeApplication(testInstance, "kinds")
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, "error", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "console", application.configuration.Common.LogFormat)
	require.Equal(testInstance, "auto", application.configuration.UI.Color)
	require.Empty(testInstance, application.configurationMetadata.ConfigFileUsed)
}

func TestApplicationConfigurationSources(testInstance *testing.T) {
	testCases := []struct {
		name                string
		writeConfiguration  bool
		environmentColor    string
		flagArguments       []string
		expectedColor       string
		expectedLogFormat   string
		expectConfigFileSet bool
	}{
		{
			name:                "configuration_file",
			writeConfiguration:  true,
			expectedColor:       "always",
			expectedLogFormat:   "structured",
			expectConfigFileSet: true,
		},
		{
			name:                "environment_overrides_file",
			writeConfiguration:  true,
			environmentColor:    "never",
			expectedColor:       "never",
			expectedLogFormat:   "structured",
			expectConfigFileSet: true,
		},
		{
			name:                "flags_override_everything",
			writeConfiguration:  true,
			environmentColor:    "always",
			flagArguments:       []string{"--color", "NEVER", "--log-format", "console"},
			expectedColor:       "never",
			expectedLogFormat:   "console",
			expectConfigFileSet: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			arguments := []string{}
			if testCase.writeConfiguration {
				configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
				require.NoError(testInstance, os.WriteFile(configurationPath, []byte(testConfigurationContentConstant), 0o600))
				arguments = append(arguments, "--config", configurationPath)
			}
			if len(testCase.environmentColor) > 0 {
				testInstance.Setenv(testColorEnvironmentVariable, testCase.environmentColor)
			}
			arguments = append(arguments, testCase.flagArguments...)
			arguments = append(arguments, "kinds")

			application, _, executionError := executeApplication(testInstance, arguments...)
			require.NoError(testInstance, executionError)
			require.Equal(testInstance, testCase.expectedColor, application.configuration.UI.Color)
			require.Equal(testInstance, testCase.expectedLogFormat, application.configuration.Common.LogFormat)
			require.Equal(testInstance, testCase.expectConfigFileSet, len(application.configurationMetadata.ConfigFileUsed) > 0)
		})
	}
}

func TestApplicationRejectsInvalidSettings(testInstance *testing.T) {
	testCases := []struct {
		name          string
		arguments     []string
		expectedError string
	}{
		{name: "color_mode", arguments: []string{"--color", "rainbow", "kinds"}, expectedError: "unable to resolve color mode"},
		{name: "log_level", arguments: []string{"--log-level", "verbose", "kinds"}, expectedError: "unable to create logger"},
		{name: "missing_configuration_file", arguments: []string{"--config", "/nonexistent/coverui/config.yaml", "kinds"}, expectedError: "unable to load configuration"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, _, executionError := executeApplication(testInstance, testCase.arguments...)
			require.Error(testInstance, executionError)
			require.Contains(testInstance, executionError.Error(), testCase.expectedError)
		})
	}
}

func TestApplicationRendersMessages(testInstance *testing.T) {
	testCases := []struct {
		name           string
		arguments      []string
		expectedOutput string
		expectError    bool
	}{
		{
			name:           "report_server",
			arguments:      []string{"--color", "never", "report", "server", testServerPortConstant},
			expectedOutput: testServerLineConstant,
		},
		{
			name:           "generate_istanbul_failure",
			arguments:      []string{"--color", "never", "generate", "istanbul-fail"},
			expectedOutput: "Istanbul coverage reports could not be generated. \n",
		},
		{
			name:           "report_log_sink_under_default_level",
			arguments:      []string{"--color", "never", "report", "--log", "server", testServerPortConstant},
			expectedOutput: testServerLineConstant,
		},
		{
			name:        "report_unknown_kind",
			arguments:   []string{"report", "not-a-key"},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			testInstance.Chdir(testInstance.TempDir())

			_, output, executionError := executeApplication(testInstance, testCase.arguments...)
			if testCase.expectError {
				require.Error(testInstance, executionError)
				return
			}
			require.NoError(testInstance, executionError)
			require.Equal(testInstance, testCase.expectedOutput, output)
		})
	}
}

func TestApplicationReportLogSinkWritesToStandardErrorAtInfoLevel(testInstance *testing.T) {
	testInstance.Chdir(testInstance.TempDir())

	pipeReader, pipeWriter, pipeError := os.Pipe()
	require.NoError(testInstance, pipeError)
	originalStderr := os.Stderr
	os.Stderr = pipeWriter
	testInstance.Cleanup(func() {
		os.Stderr = originalStderr
	})

	_, output, executionError := executeApplication(testInstance, "--color", "never", "--log-level", "info", "report", "--log", "server", testServerPortConstant)
	os.Stderr = originalStderr
	require.NoError(testInstance, pipeWriter.Close())
	require.NoError(testInstance, executionError)

	capturedStderr, readError := io.ReadAll(pipeReader)
	require.NoError(testInstance, readError)
	require.NoError(testInstance, pipeReader.Close())

	require.Empty(testInstance, output)
	require.Contains(testInstance, string(capturedStderr), strings.TrimSuffix(testServerLineConstant, "\n"))
}

func TestInitializeConfigurationAttachesContextValues(testInstance *testing.T) {
	testInstance.Chdir(testInstance.TempDir())

	application := NewApplication()
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(colorFlagNameConstant, "never"))

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	colorMode, colorModeAvailable := application.commandContextAccessor.ColorMode(application.rootCommand.Context())
	require.True(testInstance, colorModeAvailable)
	require.Equal(testInstance, "never", colorMode)

	configurationFilePath, configurationFilePathAvailable := application.commandContextAccessor.ConfigurationFilePath(application.rootCommand.Context())
	require.True(testInstance, configurationFilePathAvailable)
	require.Empty(testInstance, configurationFilePath)
}

func TestApplicationExpandsHomeRelativeConfigurationPath(testInstance *testing.T) {
	testInstance.Chdir(testInstance.TempDir())

	homeDirectory := testInstance.TempDir()
	configurationPath := filepath.Join(homeDirectory, testConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(testConfigurationContentConstant), 0o600))

	application := NewApplication()
	application.homeExpander = pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return homeDirectory, nil
	})
	var outputBuffer bytes.Buffer
	application.rootCommand.SetOut(&outputBuffer)
	application.rootCommand.SetErr(&outputBuffer)
	application.rootCommand.SetArgs([]string{"--config", "~/" + testConfigurationFileNameConstant, "kinds"})

	require.NoError(testInstance, application.Execute())
	require.Equal(testInstance, configurationPath, application.configurationMetadata.ConfigFileUsed)
	require.Equal(testInstance, "always", application.configuration.UI.Color)
}
