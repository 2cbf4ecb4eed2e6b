// Package logsvc provides the core.Logger implementations.
package logsvc

import (
	"github.com/pkg/errors"
	"github.com/rollbar/rollbar-go"

	"github.com/trezcool/studyplanner/core"
)

// New returns the application logger: zap, wrapped with Rollbar reporting when a token is configured.
func New(conf *core.Config) (core.Logger, func(), error) {
	zl, err := NewZapLogger(conf.Debug, conf.LogLevel)
	if err != nil {
		return nil, nil, errors.Wrap(err, "building zap logger")
	}
	if conf.RollbarToken == "" {
		return zl, zl.Sync, nil
	}
	return NewRollbarLogger(zl, conf), func() {
		rollbar.Wait()
		zl.Sync()
	}, nil
}
