package logger

import (
	"go.uber.org/zap"
)

// New creates a zap logger tuned for the given environment. Development gets
// the human-readable console encoder; everything else logs JSON at info.
func New(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NewNamed creates an environment-appropriate logger carrying the service
// name on every entry.
func NewNamed(env, service string) (*zap.Logger, error) {
	log, err := New(env)
	if err != nil {
		return nil, err
	}
	return log.Named(service), nil
}
