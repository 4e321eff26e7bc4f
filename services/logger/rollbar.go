package logsvc

import (
	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trezcool/eduforum/core"
)

type RollbarLogger struct {
	std *zap.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *zap.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

// NewNopLogger returns a logger that neither prints nor reports anything.
func NewNopLogger() *RollbarLogger {
	rollbar.SetEnabled(false)
	return &RollbarLogger{std: zap.NewNop()}
}

// NewZapLogger returns the structured logger that backs RollbarLogger, named after the app component.
func NewZapLogger(name string, conf *core.Config) (*zap.Logger, error) {
	zconf := zap.NewProductionConfig()
	if conf.Debug {
		zconf = zap.NewDevelopmentConfig()
	}
	zconf.InitialFields = map[string]interface{}{"env": conf.Env, "build": conf.Build}
	logger, err := zconf.Build()
	if err != nil {
		return nil, err
	}
	return logger.Named(name), nil
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// Sync flushes buffered log entries and waits for queued Rollbar reports.
func (l RollbarLogger) Sync() {
	_ = l.std.Sync()
	rollbar.Wait()
}

// expected fmt: msg | error, map[string]interface{}, core.Identity
func (l RollbarLogger) prepare(msg string, args []interface{}) ([]interface{}, []zap.Field) {
	var idSet bool
	newArgs := make([]interface{}, 0, len(args)+1)
	newArgs = append(newArgs, msg)
	fields := make([]zap.Field, 0, len(args))
	for _, arg := range args {
		switch a := arg.(type) {
		case core.Identity:
			// set logged in User
			if !idSet { // only set one User
				rollbar.SetPerson(a.UserID, a.Username, "")
				fields = append(fields, zap.String("user_id", a.UserID), zap.String("role", a.Role))
				idSet = true
			}
			continue
		case error:
			fields = append(fields, zap.Error(a))
		case map[string]interface{}:
			for k, v := range a {
				fields = append(fields, zap.Any(k, v))
			}
		default:
			fields = append(fields, zap.Any("extra", a))
		}
		newArgs = append(newArgs, arg)
	}
	if !idSet {
		rollbar.ClearPerson()
	}
	return newArgs, fields
}

func (l RollbarLogger) log(level zapcore.Level, msg string, args []interface{}) {
	rbArgs, fields := l.prepare(msg, args)
	switch level {
	case zapcore.DebugLevel:
		rollbar.Debug(rbArgs...)
	case zapcore.InfoLevel:
		rollbar.Info(rbArgs...)
	case zapcore.WarnLevel:
		rollbar.Warning(rbArgs...)
	case zapcore.ErrorLevel:
		rollbar.Error(rbArgs...)
	default:
		rollbar.Critical(rbArgs...)
		rollbar.Wait() // the program exits next
	}
	if ce := l.std.Check(level, msg); ce != nil {
		ce.Write(fields...)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.log(zapcore.DebugLevel, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.log(zapcore.InfoLevel, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	l.log(zapcore.WarnLevel, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	l.log(zapcore.ErrorLevel, msg, args)
}

// Fatal reports msg then exits the program.
func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(zapcore.FatalLevel, msg, args)
}
