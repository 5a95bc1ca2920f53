package ui_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/coverui/internal/ui"
)

func TestFormatterFormat(testInstance *testing.T) {
	testCases := []struct {
		name           string
		input          string
		expectedOutput string
	}{
		{name: "expands_known_shortcode", input: "launch :rocket: now", expectedOutput: "launch 🚀 now"},
		{name: "keeps_unknown_shortcode", input: "keep :not_a_registered_code: as is", expectedOutput: "keep :not_a_registered_code: as is"},
		{name: "keeps_addresses", input: "http://127.0.0.1:8545", expectedOutput: "http://127.0.0.1:8545"},
		{name: "plain_text", input: "Instrumenting for coverage...", expectedOutput: "Instrumenting for coverage..."},
	}

	formatter := ui.NewFormatter(func(string) {})
	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedOutput, formatter.Format(testCase.input))
		})
	}
}

func TestFormatterWriteInvokesWriterOnce(testInstance *testing.T) {
	writer := &capturingWriter{}
	formatter := ui.NewFormatter(writer.write)

	formatter.Write(":warning:  careful")
	require.Len(testInstance, writer.messages, 1)
	require.NotContains(testInstance, writer.messages[0], testWarningShortcodeConstant)
	require.Contains(testInstance, writer.messages[0], "careful")
}

func TestFormatterBaseOperationsAreNoOps(testInstance *testing.T) {
	writer := &capturingWriter{}
	var messageWriter ui.MessageWriter = ui.NewFormatter(writer.write)

	require.NoError(testInstance, messageWriter.Report(ui.ReportKindServer, testServerPortConstant))
	message, generateError := messageWriter.Generate(ui.GenerateKindServerFail, testServerPortConstant)
	require.NoError(testInstance, generateError)
	require.Empty(testInstance, message)
	require.Empty(testInstance, writer.messages)
}
