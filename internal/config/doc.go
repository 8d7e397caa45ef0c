// Package config defines the demo binary's settings and provides helpers to
// load and validate them from a YAML file.
//
// The Config type covers the log level override, the coloring mode and the
// size of the simulated workload. Every field has a safe default, so the
// demo runs without any configuration file at all.
package config
