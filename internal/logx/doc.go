// Package logx configures the debounce command's structured logging.
//
// Logs are written with zerolog through a console writer, so they stay
// readable on a terminal while keeping structured fields.
package logx
