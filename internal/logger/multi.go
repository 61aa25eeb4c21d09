package logger

// multiLogger fans every message out to a set of loggers, letting a scan
// log to the console and its run file at once.
type multiLogger struct {
	loggers []Logger
}

// Multi combines loggers into one. Nil entries are dropped.
func Multi(loggers ...Logger) Logger {
	kept := make([]Logger, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			kept = append(kept, l)
		}
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return &multiLogger{loggers: kept}
}

func (m *multiLogger) Tracef(format string, args ...any) {
	for _, l := range m.loggers {
		l.Tracef(format, args...)
	}
}

func (m *multiLogger) Debugf(format string, args ...any) {
	for _, l := range m.loggers {
		l.Debugf(format, args...)
	}
}

func (m *multiLogger) Infof(format string, args ...any) {
	for _, l := range m.loggers {
		l.Infof(format, args...)
	}
}

func (m *multiLogger) Warnf(format string, args ...any) {
	for _, l := range m.loggers {
		l.Warnf(format, args...)
	}
}

func (m *multiLogger) Errorf(format string, args ...any) {
	for _, l := range m.loggers {
		l.Errorf(format, args...)
	}
}
