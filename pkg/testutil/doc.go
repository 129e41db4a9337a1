// Package testutil provides utilities for testing haus components.
//
// Key components:
//   - Environment: a haus root with etc/ files and per-account home
//     directories in a temporary directory
//   - NewResolver: a users.Resolver backed by a fixed account table
//   - File helpers that fail the test on error
package testutil
