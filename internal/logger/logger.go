package logger

import (
	"net/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is replaced by Init. Until then it discards everything.
var Logger = zap.NewNop()

func Init(development bool) error {
	var config zap.Config
	if development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")

	built, err := config.Build()
	if err != nil {
		return err
	}
	Logger = built.With(zap.String("service", "worktracker"))
	return nil
}

func Sync() {
	_ = Logger.Sync()
}

func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func Log(lvl zapcore.Level, msg string, fields ...zap.Field) {
	Logger.Log(lvl, msg, fields...)
}

// HttpRequestInfo logs msg with the route being handled. The request id set
// by the middleware travels in the X-Request-ID header.
func HttpRequestInfo(r *http.Request, msg string, fields ...zap.Field) {
	allFields := make([]zap.Field, 0, len(fields)+3)
	allFields = append(allFields,
		zap.String("request_id", r.Header.Get("X-Request-ID")),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	Logger.Info(msg, append(allFields, fields...)...)
}

func Error(msg string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	Logger.Error(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}
