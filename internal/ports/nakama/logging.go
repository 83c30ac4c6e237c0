package nakama

import (
	"io"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/sirupsen/logrus"
)

// runtimeHook forwards logrus entries to the Nakama logger.
type runtimeHook struct {
	logger runtime.Logger
}

func (h runtimeHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h runtimeHook) Fire(e *logrus.Entry) error {
	l := h.logger
	if len(e.Data) > 0 {
		l = l.WithFields(map[string]interface{}(e.Data))
	}
	switch e.Level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		l.Error("%s", e.Message)
	case logrus.WarnLevel:
		l.Warn("%s", e.Message)
	case logrus.InfoLevel:
		l.Info("%s", e.Message)
	default:
		l.Debug("%s", e.Message)
	}
	return nil
}

// newBridgeLogger returns a logrus logger whose only sink is logger.
func newBridgeLogger(logger runtime.Logger, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(level)
	l.AddHook(runtimeHook{logger: logger})
	return l
}
