// Package filesystem provides the filesystem abstraction used by haus.
//
// NewOS operates on the real filesystem; NewAferoFS wraps an afero.Fs so
// tests can run against an in-memory tree.
package filesystem
