// Package cli implements the debounce command line tool.
package cli
