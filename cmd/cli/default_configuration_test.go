package cli_test

import (
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/coverui/cmd/cli"
	"github.com/temirov/coverui/internal/ui"
	"github.com/temirov/coverui/internal/utils"
)

func TestEmbeddedDefaultConfigurationDecodes(testInstance *testing.T) {
	configurationContent, configurationType := cli.EmbeddedDefaultConfiguration()
	require.Equal(testInstance, "yaml", configurationType)

	rawConfiguration := map[string]any{}
	require.NoError(testInstance, yaml.Unmarshal(configurationContent, &rawConfiguration))

	var configuration cli.ApplicationConfiguration
	require.NoError(testInstance, mapstructure.Decode(rawConfiguration, &configuration))

	require.Equal(testInstance, string(utils.LogLevelError), configuration.Common.LogLevel)
	require.Equal(testInstance, string(utils.LogFormatConsole), configuration.Common.LogFormat)

	colorMode, parseError := ui.ParseColorMode(configuration.UI.Color)
	require.NoError(testInstance, parseError)
	require.Equal(testInstance, ui.ColorModeAuto, colorMode)
}

func TestEmbeddedDefaultConfigurationReturnsCopy(testInstance *testing.T) {
	firstContent, _ := cli.EmbeddedDefaultConfiguration()
	firstContent[0] = '#'

	secondContent, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEqual(testInstance, firstContent[0], secondContent[0])
}
