package app

import (
	"log/slog"

	"github.com/graphacademy/journey/internal/journey"
	"github.com/graphacademy/journey/internal/logging"
	"github.com/graphacademy/journey/internal/mission"
)

// LogListener writes every notification to the structured log. Useful as
// the default sink behind an AsyncListener.
type LogListener struct {
	log *slog.Logger
}

func NewLogListener() *LogListener {
	return &LogListener{log: logging.New("listener")}
}

func (l *LogListener) JourneyTypeChanged(crosserID string, previous, current journey.Type) {
	l.log.Info("journey type changed",
		"crosser", crosserID, "previous", string(previous), "current", string(current))
}

func (l *LogListener) MissionCompleted(crosserID string, spec mission.Spec, result journey.Type, length int) {
	l.log.Info("mission completed",
		"crosser", crosserID, "mission", spec.ID, "result", string(result), "length", length)
}
