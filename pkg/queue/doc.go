// Package queue collects the filesystem operations a command wants to
// perform and applies them.
//
// Operations are recorded per target user in insertion order. Execute runs
// every user's batch concurrently, and each batch sequentially, so the
// operations for one home directory never race each other. Targets that
// already exist are conflicts: they are skipped and reported unless Force
// is set. With Noop set nothing is changed and every operation is reported
// as planned.
package queue
