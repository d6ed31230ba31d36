package logger_adapter

import (
	"discovery-service/internal/core/port"
	"fmt"
)

// MultiLoggerAdapter раздает записи нескольким приемникам (stdout, fluent)
type MultiLoggerAdapter struct {
	sinks []port.LoggerPort
}

// NewMultiloggerAdapter пропускает nil-приемники, чтобы отключенный fluent
// можно было передавать без проверок. Один приемник возвращается как есть.
func NewMultiloggerAdapter(sinks ...port.LoggerPort) (port.LoggerPort, error) {
	active := make([]port.LoggerPort, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			active = append(active, sink)
		}
	}

	switch len(active) {
	case 0:
		return nil, fmt.Errorf("multilogger: at least one logger is required")
	case 1:
		return active[0], nil
	}
	return &MultiLoggerAdapter{sinks: active}, nil
}

func (m *MultiLoggerAdapter) each(write func(port.LoggerPort)) {
	for _, sink := range m.sinks {
		write(sink)
	}
}

func (m *MultiLoggerAdapter) Info(msg string, fields port.Fields) {
	m.each(func(l port.LoggerPort) { l.Info(msg, fields) })
}

func (m *MultiLoggerAdapter) Warn(msg string, fields port.Fields) {
	m.each(func(l port.LoggerPort) { l.Warn(msg, fields) })
}

func (m *MultiLoggerAdapter) Error(msg string, err error, fields port.Fields) {
	m.each(func(l port.LoggerPort) { l.Error(msg, err, fields) })
}

func (m *MultiLoggerAdapter) Debug(msg string, fields port.Fields) {
	m.each(func(l port.LoggerPort) { l.Debug(msg, fields) })
}

func (m *MultiLoggerAdapter) WithFields(fields port.Fields) port.LoggerPort {
	enriched := &MultiLoggerAdapter{sinks: make([]port.LoggerPort, 0, len(m.sinks))}
	m.each(func(l port.LoggerPort) { enriched.sinks = append(enriched.sinks, l.WithFields(fields)) })
	return enriched
}
