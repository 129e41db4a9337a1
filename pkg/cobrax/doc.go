// Package cobrax mirrors the haus command registry as a cobra command tree.
//
// haus dispatches commands itself; the cobra tree exists only so that
// cobra can generate shell completion scripts, answer the completion
// requests those scripts make, and render man pages. Every registered
// command becomes a subcommand carrying the flags of its option parser.
package cobrax
