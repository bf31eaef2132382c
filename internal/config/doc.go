// Package config loads debounce policies for the debounce command from YAML
// files.
//
// A policy file looks like:
//
//	wait: 250ms
//	leading: false
//	trailing: true
//	max_wait: 2s
//	log_level: info
//	watch:
//	  paths: [./src]
//	  min_interval: 1s
//	  command: [make, build]
//
// Durations use time.ParseDuration syntax. Empty durations mean zero.
package config
