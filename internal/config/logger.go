package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the root logger for a binary.
func NewLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	lg := logrus.New()
	lg.Formatter = &logrus.TextFormatter{ForceColors: true, FullTimestamp: true, TimestampFormat: "15:04:05"}
	lg.SetLevel(lvl)
	return lg, nil
}
