// Package config loads application configuration from environment variables
// and, optionally, a YAML file.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - Load parses the environment into a struct using `env` tags and caches
//     the result per type, so repeated calls are cheap.
//   - LoadEnv loads one or more .env files into the process environment.
//   - LoadFile parses the environment and then overlays a YAML file decoded
//     with gopkg.in/yaml.v3 using the `yaml` tags of the same struct.
//   - MustLoad panics on failure for configuration required at startup.
//
// # Usage
//
//	type Config struct {
//	    Session session.Config `yaml:"session"`
//	    Worker  worker.Config  `yaml:"worker"`
//	}
//
//	var cfg Config
//	if err := config.LoadFile(os.Getenv("SESSIOND_CONFIG"), &cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
//   - ErrParsingConfig: env vars could not be parsed into the struct.
//   - ErrReadingFile, ErrDecodingFile: the YAML file is missing or invalid.
//   - ErrConfigNotLoaded: the cached value disappeared during Load.
//   - ErrNilPointer: nil pointer passed to Load or LoadFile.
//
// ResetCache clears the cache between tests.
package config
