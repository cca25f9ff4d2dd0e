package logsvc

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/trezcool/asistencia/core"
	"github.com/trezcool/asistencia/core/register"
)

type LogrusLogger struct {
	log *logrus.Logger
}

var _ core.Logger = (*LogrusLogger)(nil)

// NewLogrusLogger logs to out at level ("debug", "info"...). PROD gets JSON lines, anything else text.
func NewLogrusLogger(out io.Writer, level, env string) *LogrusLogger {
	l := logrus.New()
	l.SetOutput(out)

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		l.Warnf("invalid log level %q, defaulting to info", level)
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(env, "PROD") {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}
	return &LogrusLogger{log: l}
}

// NewFromConf builds the logger from core.Conf.
func NewFromConf(out io.Writer) *LogrusLogger {
	return NewLogrusLogger(out, core.Conf.GetString("logLevel"), core.Conf.GetString("env"))
}

// expected fmt: msg | error, map[string]interface{}, register.Teacher
func (l LogrusLogger) entry(args []interface{}) *logrus.Entry {
	e := logrus.NewEntry(l.log)
	var extra []interface{}
	for _, arg := range args {
		switch a := arg.(type) {
		case register.Teacher:
			if a.ID != "" {
				e = e.WithFields(logrus.Fields{"teacher": a.ID, "teacher_name": a.Name})
			}
		case error:
			e = e.WithError(a)
		case map[string]interface{}:
			e = e.WithFields(a)
		case nil:
		default:
			extra = append(extra, a)
		}
	}
	if len(extra) > 0 {
		e = e.WithField("args", extra)
	}
	return e
}

func (l LogrusLogger) Debug(msg string, args ...interface{}) {
	l.entry(args).Debug(msg)
}

func (l LogrusLogger) Info(msg string, args ...interface{}) {
	l.entry(args).Info(msg)
}

func (l LogrusLogger) Warn(msg string, args ...interface{}) {
	l.entry(args).Warn(msg)
}

func (l LogrusLogger) Error(msg string, args ...interface{}) {
	l.entry(args).Error(msg)
}

func (l LogrusLogger) Fatal(msg string, args ...interface{}) {
	l.entry(args).Fatal(msg)
}
