package app

import (
	"context"

	"github.com/graphacademy/journey/internal/course"
	"github.com/graphacademy/journey/internal/journey"
	"github.com/graphacademy/journey/internal/mission"
)

// MissionService is the surface the transports are written against.
type MissionService interface {
	StartMission(crosserID, missionID string) (Status, error)
	VertexVisited(crosserID, vertexID string) (Status, error)
	EdgeCrossed(crosserID, edgeID string) (Status, error)
	Status(crosserID string) (Status, error)
	Reset(crosserID string) (Status, error)
	Progress(ctx context.Context, crosserID string) ([]string, error)
	ClassifyEvents(courseDOT string, events []Event) (ClassifyResult, error)
}

// Listener receives service-level notifications. Listeners are invoked
// synchronously while the service lock is held; slow sinks should be
// wrapped in an AsyncListener.
type Listener interface {
	JourneyTypeChanged(crosserID string, previous, current journey.Type)
	MissionCompleted(crosserID string, spec mission.Spec, result journey.Type, length int)
}

// CourseCache memoizes compiled course maps for the stateless classify
// surface.
type CourseCache interface {
	GetOrCompute(dot string, fn func() (*course.Course, error)) (*course.Course, error)
}
