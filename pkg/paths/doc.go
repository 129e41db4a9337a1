// Package paths resolves the haus installation root, the directory whose
// etc/ subdirectory holds the managed dotfiles.
package paths
