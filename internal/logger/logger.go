// Package logger wraps zap behind a process-wide sugared logger. Init picks
// the encoder from the runtime environment; everything else reaches the shared
// instance through Get.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the shared logger once. "production" gets the JSON encoder;
// anything else gets the console encoder with caller info.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		switch env {
		case "production":
			base, err = zap.NewProduction()
		default:
			base, err = zap.NewDevelopment()
		}
		if err != nil {
			base = zap.NewNop()
		}

		sugar = base.Sugar()
	})
}

// Get returns the shared sugared logger, initializing a development logger on
// first use if Init was never called.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes buffered entries; deferred from main.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
