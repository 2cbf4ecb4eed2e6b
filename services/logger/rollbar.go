package logsvc

import (
	"fmt"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/studyplanner/core"
)

// RollbarLogger reports warnings and errors to Rollbar and forwards every entry to the wrapped Logger.
type RollbarLogger struct {
	next core.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(next core.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetEnabled(conf.RollbarToken != "")
	return &RollbarLogger{next: next}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// prepare turns key/value pairs into rollbar args: the first error value is reported as the error,
// the rest go to the custom data map.
func (l RollbarLogger) prepare(msg string, keysAndValues []interface{}) []interface{} {
	args := make([]interface{}, 0, 3)
	extras := make(map[string]interface{}, len(keysAndValues)/2)
	var errSet bool
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i == len(keysAndValues)-1 {
			extras["extra"] = keysAndValues[i]
			break
		}
		val := keysAndValues[i+1]
		if err, ok := val.(error); ok && !errSet {
			args = append(args, err)
			errSet = true
			continue
		}
		extras[key] = val
	}
	args = append(args, msg)
	if len(extras) > 0 {
		args = append(args, extras)
	}
	return args
}

func (l RollbarLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.next.Debug(msg, keysAndValues...)
}

func (l RollbarLogger) Info(msg string, keysAndValues ...interface{}) {
	l.next.Info(msg, keysAndValues...)
}

func (l RollbarLogger) Warn(msg string, keysAndValues ...interface{}) {
	rollbar.Warning(l.prepare(msg, keysAndValues)...)
	l.next.Warn(msg, keysAndValues...)
}

func (l RollbarLogger) Error(msg string, keysAndValues ...interface{}) {
	rollbar.Error(l.prepare(msg, keysAndValues)...)
	l.next.Error(msg, keysAndValues...)
}

func (l RollbarLogger) Fatal(msg string, keysAndValues ...interface{}) {
	rollbar.Critical(l.prepare(msg, keysAndValues)...)
	rollbar.Wait()
	l.next.Fatal(msg, keysAndValues...)
}
