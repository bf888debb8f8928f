// Package logger provides structured logging for cdnkit on top of
// zerolog.
//
// Components receive a *Logger and narrow it with WithComponent,
// WithContext, and WithFields. The package-level helpers log through a
// process-wide logger installed by Init, which the CLI configures from
// the logging section of the config file.
package logger
