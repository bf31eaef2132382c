// Package watch feeds file system events into a debouncer and runs a command
// for each coalesced event.
package watch
