// Package config loads and validates cdnkit configuration.
//
// Configuration is read from a YAML file (cdnkit.yml searched in the
// working directory, ./config and ~/.config/cdnkit), an optional .env
// file and CDNKIT_-prefixed environment variables, with the environment
// taking precedence:
//
//	var cfg config.Config
//	if err := config.Load(&cfg, config.WithConfigFile(path)); err != nil {
//		return err
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
//
// CDNKIT_LOADER_TIMEOUT_MS=4000 overrides loader.timeout_ms, and so on for
// every key.
package config
