package messages

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/coverui/internal/ui"
	"github.com/temirov/coverui/internal/utils"
)

const (
	reportCommandUseConstant              = "report <kind> [arguments...]"
	reportCommandShortDescriptionConstant = "Write a coverage console message"
	reportCommandLongDescriptionConstant  = "report renders the catalog message identified by kind, substituting positional arguments, and writes it to standard output."
	generateCommandUseConstant            = "generate <kind> [arguments...]"
	generateCommandShortDescription       = "Print a coverage failure message"
	generateCommandLongDescription        = "generate renders the failure message identified by kind and prints the text a host tool would raise."
	kindsCommandUseConstant               = "kinds"
	kindsCommandShortDescriptionConstant  = "List recognized message kinds"
	kindsCommandLongDescriptionConstant   = "kinds lists the message kinds accepted by the report and generate commands."
	flagLogSinkNameConstant               = "log"
	flagLogSinkDescriptionConstant        = "Route the message through the diagnostic logger when it logs at info level, otherwise through standard output"
	reportExecutionErrorTemplateConstant  = "report failed: %w"
	generateExecutionErrorTemplate        = "generate failed: %w"
	colorModeErrorTemplateConstant        = "invalid color mode: %w"
	kindListingTemplateConstant           = "%s\t%s\n"
	reportOperationLabelConstant          = "report"
	generateOperationLabelConstant        = "generate"
	renderingMessageLogConstant           = "rendering catalog message"
	logFieldOperationConstant             = "operation"
	logFieldKindConstant                  = "kind"
	logFieldArgumentCountConstant         = "argument_count"
	lineTerminatorConstant                = "\n"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ReportCommandBuilder assembles the report command.
type ReportCommandBuilder struct {
	LoggerProvider LoggerProvider
}

// Build constructs the report command.
func (builder *ReportCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   reportCommandUseConstant,
		Short: reportCommandShortDescriptionConstant,
		Long:  reportCommandLongDescriptionConstant,
		Args:  cobra.MinimumNArgs(1),
		RunE:  builder.run,
	}

	command.Flags().Bool(flagLogSinkNameConstant, false, flagLogSinkDescriptionConstant)

	return command, nil
}

func (builder *ReportCommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := resolveLogger(builder.LoggerProvider)
	palette, paletteError := resolvePalette(command)
	if paletteError != nil {
		return paletteError
	}

	writeFunc := ui.NewStandardOutputWriteFunc(command.OutOrStdout())
	if routeToLogger, _ := command.Flags().GetBool(flagLogSinkNameConstant); routeToLogger {
		writeFunc = ui.NewLoggerWriteFunc(logger, writeFunc)
	}

	kind := ui.MessageKind(arguments[0])
	logRendering(logger, reportOperationLabelConstant, kind, arguments[1:])

	catalog := ui.NewAppCatalogWithPalette(writeFunc, palette)
	if reportError := catalog.Report(kind, arguments[1:]...); reportError != nil {
		return fmt.Errorf(reportExecutionErrorTemplateConstant, reportError)
	}

	return nil
}

// GenerateCommandBuilder assembles the generate command.
type GenerateCommandBuilder struct {
	LoggerProvider LoggerProvider
}

// Build constructs the generate command.
func (builder *GenerateCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   generateCommandUseConstant,
		Short: generateCommandShortDescription,
		Long:  generateCommandLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *GenerateCommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := resolveLogger(builder.LoggerProvider)
	palette, paletteError := resolvePalette(command)
	if paletteError != nil {
		return paletteError
	}

	kind := ui.MessageKind(arguments[0])
	logRendering(logger, generateOperationLabelConstant, kind, arguments[1:])

	catalog := ui.NewAppCatalogWithPalette(ui.NewStandardOutputWriteFunc(command.OutOrStdout()), palette)
	message, generateError := catalog.Generate(kind, arguments[1:]...)
	if generateError != nil {
		return fmt.Errorf(generateExecutionErrorTemplate, generateError)
	}

	return writeTerminated(command.OutOrStdout(), message)
}

// KindsCommandBuilder assembles the kinds command.
type KindsCommandBuilder struct{}

// Build constructs the kinds command.
func (builder *KindsCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   kindsCommandUseConstant,
		Short: kindsCommandShortDescriptionConstant,
		Long:  kindsCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *KindsCommandBuilder) run(command *cobra.Command, arguments []string) error {
	outputWriter := command.OutOrStdout()
	for _, kind := range ui.ReportKinds() {
		if _, writeError := fmt.Fprintf(outputWriter, kindListingTemplateConstant, reportOperationLabelConstant, kind); writeError != nil {
			return writeError
		}
	}
	for _, kind := range ui.GenerateKinds() {
		if _, writeError := fmt.Fprintf(outputWriter, kindListingTemplateConstant, generateOperationLabelConstant, kind); writeError != nil {
			return writeError
		}
	}

	return nil
}

func resolveLogger(loggerProvider LoggerProvider) *zap.Logger {
	if loggerProvider == nil {
		return zap.NewNop()
	}

	logger := loggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func resolvePalette(command *cobra.Command) (ui.Palette, error) {
	colorModeValue, _ := utils.NewCommandContextAccessor().ColorMode(command.Context())
	colorMode, parseError := ui.ParseColorMode(colorModeValue)
	if parseError != nil {
		return ui.Palette{}, fmt.Errorf(colorModeErrorTemplateConstant, parseError)
	}
	return ui.NewPalette(colorMode), nil
}

func logRendering(logger *zap.Logger, operation string, kind ui.MessageKind, arguments []string) {
	logger.Debug(
		renderingMessageLogConstant,
		zap.String(logFieldOperationConstant, operation),
		zap.String(logFieldKindConstant, string(kind)),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)
}

func writeTerminated(outputWriter io.Writer, message string) error {
	if !strings.HasSuffix(message, lineTerminatorConstant) {
		message += lineTerminatorConstant
	}
	_, writeError := io.WriteString(outputWriter, message)
	return writeError
}
