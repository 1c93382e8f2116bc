package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	cache sync.Map // reflect.Type -> *entry

	// A missing .env file is fine; the process environment still applies.
	loadDotenv = sync.OnceFunc(func() { _ = godotenv.Load() })
)

// Load fills v from the environment (and a .env file in the working
// directory, if present) using `env` struct tags. Each config type is parsed
// once per process; later calls receive a copy of the cached value, or the
// cached error.
//
//	type ServerConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil { ... }
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	loadDotenv()

	key := reflect.TypeFor[T]()
	actual, _ := cache.LoadOrStore(key, &entry{})
	e := actual.(*entry)
	e.once.Do(func() {
		parsed, err := Parse[T]()
		e.value, e.err = parsed, err
	})
	if e.err != nil {
		return e.err
	}
	*v = e.value.(T)
	return nil
}

// MustLoad is like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// Parse reads T from the current environment without touching the cache.
func Parse[T any]() (T, error) {
	v, err := env.ParseAs[T]()
	if err != nil {
		return v, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}
