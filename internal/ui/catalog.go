package ui

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Report kinds are written immediately.
const (
	ReportKindVMFail       MessageKind = "vm-fail"
	ReportKindInstrStart   MessageKind = "instr-start"
	ReportKindInstrSkip    MessageKind = "instr-skip"
	ReportKindInstrItem    MessageKind = "instr-item"
	ReportKindInstrSkipped MessageKind = "instr-skipped"
	ReportKindIstanbul     MessageKind = "istanbul"
	ReportKindCleanup      MessageKind = "cleanup"
	ReportKindServer       MessageKind = "server"
)

// Generate kinds are returned to the caller, typically to become error text.
const (
	GenerateKindInstrFail    MessageKind = "instr-fail"
	GenerateKindIstanbulFail MessageKind = "istanbul-fail"
	GenerateKindSourcesFail  MessageKind = "sources-fail"
	GenerateKindServerFail   MessageKind = "server-fail"
)

const (
	unknownMessageKindMessageConstant   = "unknown message kind"
	unknownReportKindErrorTemplate      = "%w: report %q"
	unknownGenerateKindErrorTemplate    = "%w: generate %q"
	missingArgumentPlaceholderConstant  = "undefined"
	warningShortcodeConstant            = ":warning:"
	underlineCharacterConstant          = "="
	vmFailTemplateConstant              = "%s  %s %s\n%s  %s\n"
	vmAttachProblemMessageConstant      = "There was a problem attaching to the ganache-core VM."
	vmProviderSyntaxMessageConstant     = "Check the provider option syntax in solidity-coverage docs."
	vmFallbackMessageConstant           = "Using ganache-core-sc (eq. core v2.7.0) instead."
	bannerTemplateConstant              = "\n%s\n%s\n"
	instrumentationStartTitleConstant   = "Instrumenting for coverage..."
	instrumentationSkipTitleConstant    = "Coverage skipped for:"
	markedLineTemplateConstant          = "%s %s"
	istanbulTemplateConstant            = "%s %s ./coverage/ %s ./coverage.json"
	istanbulWrittenMessageConstant      = "Istanbul reports written to"
	istanbulConjunctionConstant         = "and"
	cleanupMessageConstant              = "solidity-coverage cleaning up, shutting down ganache server"
	serverTemplateConstant              = "%s %s           %s"
	serverLabelConstant                 = "server: "
	instrumentationFailTemplateConstant = "%s %s. %s"
	instrumentationFailPrefixConstant   = "Could not instrument:"
	instrumentationFailHintConstant     = "(Please verify solc can compile this file without errors.) "
	istanbulFailMessageConstant         = "Istanbul coverage reports could not be generated. "
	sourcesFailTemplateConstant         = "%s %s"
	sourcesFailPrefixConstant           = "Cannot locate expected contract sources folder: "
	serverFailTemplateConstant          = "%s%s %s%s"
	serverFailPrefixConstant            = "Could not launch ganache server. Is "
	serverFailInUseConstant             = "already in use? "
	serverFailHintConstant              = "Run \"lsof -i\" in your terminal to check.\n"
)

// ErrUnknownMessageKind indicates a kind that the catalog does not define.
var ErrUnknownMessageKind = errors.New(unknownMessageKindMessageConstant)

type templateArguments []string

// at returns the positional argument or the placeholder when it was not supplied.
func (arguments templateArguments) at(index int) string {
	if index < 0 || index >= len(arguments) {
		return missingArgumentPlaceholderConstant
	}
	return arguments[index]
}

type messageTemplate func(palette Palette, arguments templateArguments) string

var reportTemplates = map[MessageKind]messageTemplate{
	ReportKindVMFail: func(palette Palette, arguments templateArguments) string {
		return fmt.Sprintf(vmFailTemplateConstant,
			warningShortcodeConstant,
			palette.Red(vmAttachProblemMessageConstant),
			palette.Red(vmProviderSyntaxMessageConstant),
			warningShortcodeConstant,
			palette.Red(vmFallbackMessageConstant),
		)
	},
	ReportKindInstrStart: func(palette Palette, arguments templateArguments) string {
		return underlinedBanner(palette, instrumentationStartTitleConstant)
	},
	ReportKindInstrSkip: func(palette Palette, arguments templateArguments) string {
		return underlinedBanner(palette, instrumentationSkipTitleConstant)
	},
	ReportKindInstrItem: func(palette Palette, arguments templateArguments) string {
		return fmt.Sprintf(markedLineTemplateConstant, palette.InsertedMarker(), arguments.at(0))
	},
	ReportKindInstrSkipped: func(palette Palette, arguments templateArguments) string {
		return fmt.Sprintf(markedLineTemplateConstant, palette.SkippedMarker(), palette.Grey(arguments.at(0)))
	},
	ReportKindIstanbul: func(palette Palette, arguments templateArguments) string {
		return fmt.Sprintf(istanbulTemplateConstant,
			palette.InsertedMarker(),
			palette.Grey(istanbulWrittenMessageConstant),
			palette.Grey(istanbulConjunctionConstant),
		)
	},
	ReportKindCleanup: func(palette Palette, arguments templateArguments) string {
		return fmt.Sprintf(markedLineTemplateConstant, palette.InsertedMarker(), palette.Grey(cleanupMessageConstant))
	},
	ReportKindServer: func(palette Palette, arguments templateArguments) string {
		return fmt.Sprintf(serverTemplateConstant, palette.InsertedMarker(), palette.Bold(serverLabelConstant), palette.Grey(arguments.at(0)))
	},
}

var generateTemplates = map[MessageKind]messageTemplate{
	GenerateKindInstrFail: func(palette Palette, arguments templateArguments) string {
		return fmt.Sprintf(instrumentationFailTemplateConstant,
			palette.Red(instrumentationFailPrefixConstant),
			arguments.at(0),
			palette.Red(instrumentationFailHintConstant),
		)
	},
	GenerateKindIstanbulFail: func(palette Palette, arguments templateArguments) string {
		return palette.Red(istanbulFailMessageConstant)
	},
	GenerateKindSourcesFail: func(palette Palette, arguments templateArguments) string {
		return fmt.Sprintf(sourcesFailTemplateConstant, palette.Red(sourcesFailPrefixConstant), arguments.at(0))
	},
	GenerateKindServerFail: func(palette Palette, arguments templateArguments) string {
		return fmt.Sprintf(serverFailTemplateConstant,
			palette.Red(serverFailPrefixConstant),
			arguments.at(0),
			palette.Red(serverFailInUseConstant),
			palette.Red(serverFailHintConstant),
		)
	},
}

func underlinedBanner(palette Palette, title string) string {
	underline := strings.Repeat(underlineCharacterConstant, len(title))
	return fmt.Sprintf(bannerTemplateConstant, palette.Bold(title), palette.Bold(underline))
}

var _ MessageWriter = (*AppCatalog)(nil)

// AppCatalog defines the operator-facing messages of the coverage application.
type AppCatalog struct {
	*Formatter
}

// NewAppCatalog constructs the application catalog, defaulting to standard output when writeFunc is nil.
func NewAppCatalog(writeFunc WriteFunc) *AppCatalog {
	return &AppCatalog{Formatter: NewFormatter(writeFunc)}
}

// NewAppCatalogWithPalette constructs the application catalog with explicit styling.
func NewAppCatalogWithPalette(writeFunc WriteFunc, palette Palette) *AppCatalog {
	return &AppCatalog{Formatter: NewFormatterWithPalette(writeFunc, palette)}
}

// Report writes the message for kind. Unknown kinds return ErrUnknownMessageKind without writing.
func (catalog *AppCatalog) Report(kind MessageKind, arguments ...string) error {
	template, templateFound := reportTemplates[kind]
	if !templateFound {
		return fmt.Errorf(unknownReportKindErrorTemplate, ErrUnknownMessageKind, kind)
	}
	catalog.Write(template(catalog.Palette(), templateArguments(arguments)))
	return nil
}

// Generate returns the formatted message for kind. Unknown kinds return ErrUnknownMessageKind.
func (catalog *AppCatalog) Generate(kind MessageKind, arguments ...string) (string, error) {
	template, templateFound := generateTemplates[kind]
	if !templateFound {
		return "", fmt.Errorf(unknownGenerateKindErrorTemplate, ErrUnknownMessageKind, kind)
	}
	return catalog.Format(template(catalog.Palette(), templateArguments(arguments))), nil
}

// ReportKinds lists the kinds accepted by Report in lexical order.
func ReportKinds() []MessageKind {
	return sortedKinds(reportTemplates)
}

// GenerateKinds lists the kinds accepted by Generate in lexical order.
func GenerateKinds() []MessageKind {
	return sortedKinds(generateTemplates)
}

func sortedKinds(templates map[MessageKind]messageTemplate) []MessageKind {
	kinds := make([]MessageKind, 0, len(templates))
	for kind := range templates {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(leftIndex int, rightIndex int) bool {
		return kinds[leftIndex] < kinds[rightIndex]
	})
	return kinds
}
