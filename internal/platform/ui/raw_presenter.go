// internal/platform/ui/raw_presenter.go
package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"onca/internal/core/ports"
)

// LogFormat define el formato de salida para el modo raw
type LogFormat string

const (
	LogFormatText LogFormat = "text" // Formato logfmt (default)
	LogFormatJSON LogFormat = "json" // Formato JSON estructurado
)

// RawPresenter implementa ports.Notifier para modo raw (una línea por evento, sin formato visual)
type RawPresenter struct {
	format LogFormat
	w      io.Writer
	mu     sync.Mutex
	now    func() time.Time
}

// NewRawPresenter crea un nuevo RawPresenter
func NewRawPresenter(format LogFormat, w io.Writer) *RawPresenter {
	return &RawPresenter{
		format: format,
		w:      w,
		now:    time.Now,
	}
}

// Notify implementa ports.Notifier.
func (r *RawPresenter) Notify(ctx context.Context, event ports.Event) error {
	fields := map[string]interface{}{}
	if event.Source != "" {
		fields["source"] = event.Source.String()
	}

	level := "INFO"
	switch data := event.Data.(type) {
	case ports.RunStartedEvent:
		fields["target"] = data.Target.Domain
		if data.Target.HasKeyword() {
			fields["keyword"] = data.Target.Keyword
		}
		fields["sources"] = strings.Join(sourceNames(data.Sources), ",")
	case ports.SourceWaitingEvent:
		fields["delay"] = data.Delay
	case ports.SourceFinishedEvent:
		fields["status"] = statusFromOutcome(data.Kind).String()
		fields["results"] = data.Count
		fields["duration"] = data.Duration
		if data.Err != "" {
			fields["error"] = data.Err
			level = "WARN"
		}
	case ports.RunCompletedEvent:
		fields["results"] = data.Total
		fields["duration"] = data.Duration
	}
	if event.Type == ports.EventTypeRunCanceled || event.Type == ports.EventTypeSourceSkipped {
		level = "WARN"
	}

	return r.log(level, strings.ReplaceAll(string(event.Type), ".", "_"), fields)
}

// Close limpia recursos
func (r *RawPresenter) Close() error {
	return nil
}

// log escribe un log en el formato configurado
func (r *RawPresenter) log(level, message string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := r.now().UTC().Format(time.RFC3339)

	if r.format == LogFormatJSON {
		return r.logJSON(timestamp, level, message, fields)
	}
	return r.logText(timestamp, level, message, fields)
}

// logText escribe en formato logfmt: timestamp LEVEL message key=value key2=value2
func (r *RawPresenter) logText(timestamp, level, message string, fields map[string]interface{}) error {
	parts := []string{timestamp, fmt.Sprintf("%-5s", level), message}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, r.formatValue(fields[k])))
	}

	_, err := fmt.Fprintln(r.w, strings.Join(parts, " "))
	return err
}

// logJSON escribe en formato JSON estructurado
func (r *RawPresenter) logJSON(timestamp, level, message string, fields map[string]interface{}) error {
	logEntry := map[string]interface{}{
		"timestamp": timestamp,
		"level":     level,
		"message":   message,
	}

	if len(fields) > 0 {
		for k, v := range fields {
			if d, ok := v.(time.Duration); ok {
				fields[k] = d.String()
			}
		}
		logEntry["data"] = fields
	}

	jsonBytes, err := json.Marshal(logEntry)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.w, string(jsonBytes))
	return err
}

// formatValue formatea valores para logfmt (entrecomilla strings con espacios)
func (r *RawPresenter) formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		if strings.ContainsAny(val, " =\"") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case time.Duration:
		return formatDuration(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
