// Package cli constructs the coverui command-line interface, wiring the Cobra
// command hierarchy, the viper configuration loader, and zap diagnostics
// around the coverage message catalog.
package cli
