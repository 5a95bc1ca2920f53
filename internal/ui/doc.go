// Package ui renders the console messages of the coverage tool.
//
// Formatter supplies emoji expansion and the write step; AppCatalog maps
// symbolic message kinds to colored templates and either writes them through a
// WriteFunc (Report) or returns them for the caller to surface (Generate).
package ui
