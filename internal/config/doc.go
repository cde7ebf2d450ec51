// Package config holds the editor's own settings: which files to edit, how
// menus look and where logs go. It is unrelated to the documents the editor
// edits.
//
// Settings are resolved in this order, later sources winning:
//
//  1. DefaultConfig()
//  2. a .env file in the working directory (optional)
//  3. CONFED_* environment variables
//  4. command-line flags
//
// Example .env:
//
//	CONFED_SCHEMA=${HOME}/plant/config_scheme.json
//	CONFED_CONFIG=${HOME}/plant/config.json
//	CONFED_IMPORT_DIR=$HOME/Downloads
//	CONFED_THEME=dark
//
// Path settings may reference environment variables using $VAR or ${VAR}
// syntax; they are expanded by Finalize.
//
// Example usage:
//
//	cfg, err := config.Load(".env")
//	if err != nil {
//		return err
//	}
//	// apply flags ...
//	if err := cfg.Finalize(); err != nil {
//		return err
//	}
package config
