package monitoring

import (
	"io"
	"os"

	"github.com/turtacn/securepay/internal/config"
	"github.com/turtacn/securepay/pkg/constants"
	"github.com/turtacn/securepay/pkg/errors"
	"github.com/turtacn/securepay/pkg/logger"
)

// NewZapLogger builds the zap-backed service logger from the log config.
// OutputPath may be "stdout", "stderr" or a file path opened for appending.
// The returned closer releases the file, if any.
func NewZapLogger(cfg *config.LogConfig) (logger.Logger, io.Closer, error) {
	level, ok := constants.ParseLogLevel(cfg.Level)
	if !ok {
		level = constants.LogLevelInfo
	}

	out, closer, err := openLogOutput(cfg.OutputPath)
	if err != nil {
		return nil, nil, err
	}
	return logger.NewLogger(level, out).WithFields(logger.String("service", constants.ServiceName)), closer, nil
}

// ApplyLogLevel updates the level of a running logger, used on config reload.
// Unknown names leave the level unchanged.
func ApplyLogLevel(log logger.Logger, name string) bool {
	level, ok := constants.ParseLogLevel(name)
	if !ok || log.GetLevel() == level {
		return false
	}
	log.SetLevel(level)
	return true
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openLogOutput(path string) (io.Writer, io.Closer, error) {
	switch path {
	case "", "stdout":
		return os.Stdout, nopCloser{}, nil
	case "stderr":
		return os.Stderr, nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.WrapError(err, constants.ErrCodeInternal, "failed to open log output")
	}
	return f, f, nil
}
