// Package config loads haus settings from built-in defaults and HAUS_*
// environment variables. haus keeps no configuration files; everything
// else comes from command line flags.
package config
