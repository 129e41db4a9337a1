// Package registry provides a generic, type-safe registry keyed by name.
// The task registry is built on it; entries are added at program start
// and only read afterwards.
package registry
