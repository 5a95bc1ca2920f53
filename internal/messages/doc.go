// Package messages exposes the coverage message catalog as Cobra commands.
//
// The report command writes catalog messages to standard output (or through
// the diagnostic logger), generate prints the text a host would surface as an
// error, and kinds lists every recognized message kind.
package messages
