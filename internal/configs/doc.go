// Package configs manages project configuration for Envoak.
//
// Configuration is optional. Without a config file every command uses the
// defaults: secrets in .env, the encrypted artifact in config.enc, and the
// key in ENVOAK_KEY (with ENVAULT_KEY accepted as a legacy alias).
//
// # Project Configuration
//
// A project may commit a .envoak.toml at its root. Load finds it by walking
// up from the working directory, stopping above the user's home directory.
// The file is decoded with BurntSushi/toml on top of the defaults, so any
// key left out keeps its default value:
//
//	[project]
//	uuid = "6f1c..."
//	name = "api"
//
//	[files]
//	env = ".env"
//	encrypted = "config.enc"
//	markers = [".envoak_key", ".envault_key"]
//
//	[key]
//	env_var = "ENVOAK_KEY"
//	aliases = ["ENVAULT_KEY"]
//
//	[scan]
//	timeout_seconds = 0
//	parallel = 1
//
// # Environment
//
// ENVOAK_SCAN_TIMEOUT and ENVOAK_SCAN_PARALLEL override the [scan] section.
// LoadDotEnv loads the configured plaintext file ([files] env, default .env)
// of the working directory into the process environment without overriding
// variables that are already set, so a key kept in a local .env is found.
//
// KeyFromEnv is the only place the key is read from the environment.
package configs
