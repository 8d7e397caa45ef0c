// Package demo runs the contexlog-demo workload: a burst of concurrent
// simulated requests, each with its own log context, logging at every level.
// It exists to preview the output format and to show context isolation on a
// live terminal.
package demo
