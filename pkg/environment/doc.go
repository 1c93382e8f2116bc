// Package environment names the deployment a process runs in and carries it
// through configuration, request contexts and logs.
//
// Environment decodes from text, so a config struct can declare
//
//	Env environment.Environment `env:"APP_ENV" envDefault:"development"`
//
// and reject unknown values at startup. Middleware puts the value on every
// request context and LoggerExtractor surfaces it in slog records.
package environment
