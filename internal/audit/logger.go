package audit

import (
	"github.com/rs/zerolog"
)

// Logger grava eventos de auditoria como linhas estruturadas.
type Logger struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Logger {
	return &Logger{log: log.With().Str("component", "audit").Logger()}
}

func (l *Logger) Log(
	action string,
	entity string,
	entityID string,
	metadata map[string]any,
) error {

	ev := l.log.Info().
		Str("action", action).
		Str("entity", entity)

	if entityID != "" {
		ev = ev.Str("entity_id", entityID)
	}
	if len(metadata) > 0 {
		ev = ev.Fields(metadata)
	}

	ev.Msg("audit")
	return nil
}
