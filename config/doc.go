// Package config loads layered configuration for audiodigest.
//
// Values are resolved from, lowest to highest precedence: struct defaults
// applied by the caller, a YAML config file, a .env file, process
// environment variables and finally command-line flags. Environment keys
// are matched against nested config keys by splitting on underscores, so
// OPENAI_API_KEY populates openai.api_key.
//
//	var cfg Config
//	err := config.LoadConfig("audiodigest", &cfg,
//		config.WithConfigFile(path),
//		config.WithFlags(flags, map[string]string{"output-dir": "output.dir"}))
package config
