// Package config loads typed configuration structs from environment
// variables.
//
// It combines github.com/joho/godotenv, which reads an optional .env file
// into the process environment once, with github.com/caarlos0/env/v11, which
// decodes `env:"NAME"` struct tags (including envDefault and required, and
// any field implementing encoding.TextUnmarshaler).
//
// Load caches each struct type after the first call, so packages can ask for
// their configuration independently without re-parsing. Parse bypasses the
// cache, which is what tests want.
package config
