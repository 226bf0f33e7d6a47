package logger

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/turtacn/securepay/pkg/constants"
)

// zapLogger is the zap-backed implementation of Logger
type zapLogger struct {
	base  *zap.Logger
	level zap.AtomicLevel
}

// NewLogger creates a JSON logger writing to output at the given level
func NewLogger(level constants.LogLevel, output io.Writer) Logger {
	if output == nil {
		output = os.Stdout
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.MessageKey = "message"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	atomic := zap.NewAtomicLevelAt(toZapLevel(level))
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(output),
		atomic,
	)

	return &zapLogger{
		base:  zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel)),
		level: atomic,
	}
}

// NewDefaultLogger creates a logger with default settings (stdout, Info level)
func NewDefaultLogger() Logger {
	return NewLogger(constants.LogLevelInfo, os.Stdout)
}

func (l *zapLogger) Debug(ctx context.Context, message string, fields ...Field) {
	l.base.Debug(message, l.convert(ctx, fields)...)
}

func (l *zapLogger) Info(ctx context.Context, message string, fields ...Field) {
	l.base.Info(message, l.convert(ctx, fields)...)
}

func (l *zapLogger) Warn(ctx context.Context, message string, fields ...Field) {
	l.base.Warn(message, l.convert(ctx, fields)...)
}

func (l *zapLogger) Error(ctx context.Context, message string, err error, fields ...Field) {
	if err != nil {
		fields = append(fields, Err(err))
	}
	l.base.Error(message, l.convert(ctx, fields)...)
}

func (l *zapLogger) Fatal(ctx context.Context, message string, err error, fields ...Field) {
	if err != nil {
		fields = append(fields, Err(err))
	}
	l.base.Fatal(message, l.convert(ctx, fields)...)
}

// WithFields creates a new logger with additional base fields
func (l *zapLogger) WithFields(fields ...Field) Logger {
	return &zapLogger{
		base:  l.base.With(l.convert(context.Background(), fields)...),
		level: l.level,
	}
}

// WithComponent creates a new logger with a component name
func (l *zapLogger) WithComponent(component string) Logger {
	return &zapLogger{
		base:  l.base.With(zap.String("component", component)),
		level: l.level,
	}
}

// SetLevel changes the level for this logger and every logger derived from it
func (l *zapLogger) SetLevel(level constants.LogLevel) {
	l.level.SetLevel(toZapLevel(level))
}

func (l *zapLogger) GetLevel() constants.LogLevel {
	switch l.level.Level() {
	case zapcore.DebugLevel:
		return constants.LogLevelDebug
	case zapcore.WarnLevel:
		return constants.LogLevelWarn
	case zapcore.ErrorLevel:
		return constants.LogLevelError
	case zapcore.FatalLevel:
		return constants.LogLevelFatal
	default:
		return constants.LogLevelInfo
	}
}

// convert maps fields to zap fields and adds trace and request correlation from ctx
func (l *zapLogger) convert(ctx context.Context, fields []Field) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields)+3)

	if ctx != nil {
		span := trace.SpanFromContext(ctx)
		if span.SpanContext().IsValid() {
			zapFields = append(zapFields,
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.String("span_id", span.SpanContext().SpanID().String()),
			)
		} else if traceID, ok := ctx.Value(constants.ContextKeyTraceID).(string); ok {
			zapFields = append(zapFields, zap.String("trace_id", traceID))
		}
		if requestID, ok := ctx.Value(constants.ContextKeyRequestID).(string); ok {
			zapFields = append(zapFields, zap.String("request_id", requestID))
		}
	}

	for _, f := range fields {
		zapFields = append(zapFields, zap.Any(f.Key, sanitizeValue(f.Key, f.Value)))
	}
	return zapFields
}

func toZapLevel(level constants.LogLevel) zapcore.Level {
	switch level {
	case constants.LogLevelDebug:
		return zapcore.DebugLevel
	case constants.LogLevelWarn:
		return zapcore.WarnLevel
	case constants.LogLevelError:
		return zapcore.ErrorLevel
	case constants.LogLevelFatal:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
