package keysctl

import (
	"io"
	"os"

	prefixed "github.com/BertoldVdb/logrus-prefixed-formatter"
	"github.com/sirupsen/logrus"
)

// NewLogger returns a stderr logger with the prefixed text formatter
func NewLogger(level logrus.Level) *logrus.Entry {
	return newLogger(os.Stderr, level)
}

func newLogger(out io.Writer, level logrus.Level) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)

	formatter := new(prefixed.TextFormatter)
	formatter.TimestampFormat = "2006-01-02 15:04:05"
	formatter.FullTimestamp = true
	logger.SetFormatter(formatter)

	return logrus.NewEntry(logger).WithField("prefix", "keysctl")
}

// ParseLevel is logrus.ParseLevel falling back to warning
func ParseLevel(s string) logrus.Level {
	level, err := logrus.ParseLevel(s)
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}
