// Package output renders resolved configurations and command results
// for terminals, with colored output that can be disabled.
package output
