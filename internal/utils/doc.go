// Package utils exposes reusable helpers consumed by the coverui commands.
//
// It houses the viper-backed ConfigurationLoader, the zap LoggerFactory, a
// flushing writer for console sinks, and accessors for values carried in
// command execution contexts.
package utils
