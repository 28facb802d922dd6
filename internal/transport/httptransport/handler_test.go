package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/graphacademy/journey/internal/app"
	"github.com/graphacademy/journey/internal/journey"
	"github.com/graphacademy/journey/internal/mission"
)

type missionSvcStub struct {
	startFn    func(crosserID, missionID string) (app.Status, error)
	vertexFn   func(crosserID, vertexID string) (app.Status, error)
	edgeFn     func(crosserID, edgeID string) (app.Status, error)
	statusFn   func(crosserID string) (app.Status, error)
	resetFn    func(crosserID string) (app.Status, error)
	progressFn func(ctx context.Context, crosserID string) ([]string, error)
	classifyFn func(courseDOT string, events []app.Event) (app.ClassifyResult, error)
}

func (s *missionSvcStub) StartMission(crosserID, missionID string) (app.Status, error) {
	return s.startFn(crosserID, missionID)
}

func (s *missionSvcStub) VertexVisited(crosserID, vertexID string) (app.Status, error) {
	return s.vertexFn(crosserID, vertexID)
}

func (s *missionSvcStub) EdgeCrossed(crosserID, edgeID string) (app.Status, error) {
	return s.edgeFn(crosserID, edgeID)
}

func (s *missionSvcStub) Status(crosserID string) (app.Status, error) {
	return s.statusFn(crosserID)
}

func (s *missionSvcStub) Reset(crosserID string) (app.Status, error) {
	return s.resetFn(crosserID)
}

func (s *missionSvcStub) Progress(ctx context.Context, crosserID string) ([]string, error) {
	return s.progressFn(ctx, crosserID)
}

func (s *missionSvcStub) ClassifyEvents(courseDOT string, events []app.Event) (app.ClassifyResult, error) {
	return s.classifyFn(courseDOT, events)
}

func okStatus(crosserID string) app.Status {
	return app.Status{
		CrosserID:   crosserID,
		MissionID:   "walk-anywhere",
		State:       mission.StateInProgress,
		JourneyType: journey.TypeWalk,
		TargetType:  journey.TypeWalk,
	}
}

func TestHandler_StartMission_MethodNotAllowed(t *testing.T) {
	h := NewHandler(&missionSvcStub{})

	req := httptest.NewRequest(http.MethodGet, "/missions/start", nil)
	rr := httptest.NewRecorder()

	h.StartMission(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
}

func TestHandler_StartMission_InvalidJSON(t *testing.T) {
	h := NewHandler(&missionSvcStub{})

	req := httptest.NewRequest(http.MethodPost, "/missions/start", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()

	h.StartMission(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandler_StartMission_MissingMissionID(t *testing.T) {
	h := NewHandler(&missionSvcStub{})

	req := httptest.NewRequest(http.MethodPost, "/missions/start", bytes.NewBufferString(`{"crosser_id":"p1"}`))
	rr := httptest.NewRecorder()

	h.StartMission(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandler_StartMission_UnknownMissionIs404(t *testing.T) {
	h := NewHandler(&missionSvcStub{
		startFn: func(crosserID, missionID string) (app.Status, error) {
			return app.Status{}, fmt.Errorf("%w: %q", app.ErrUnknownMission, missionID)
		},
	})

	body := `{"crosser_id":"p1","mission_id":"nope"}`
	req := httptest.NewRequest(http.MethodPost, "/missions/start", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.StartMission(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestHandler_StartMission_DebounceIs429(t *testing.T) {
	h := NewHandler(&missionSvcStub{
		startFn: func(crosserID, missionID string) (app.Status, error) {
			return app.Status{}, mission.ErrStartDebounced
		},
	})

	body := `{"crosser_id":"p1","mission_id":"walk-anywhere"}`
	req := httptest.NewRequest(http.MethodPost, "/missions/start", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.StartMission(rr, req)

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rr.Code)
	}
}

func TestHandler_StartMission_ReturnsStatus(t *testing.T) {
	h := NewHandler(&missionSvcStub{
		startFn: func(crosserID, missionID string) (app.Status, error) {
			st := okStatus(crosserID)
			st.Briefing = "walk three bridges"
			return st, nil
		},
	})

	body := `{"crosser_id":"p1","mission_id":"walk-anywhere"}`
	req := httptest.NewRequest(http.MethodPost, "/missions/start", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.StartMission(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out["crosser_id"] != "p1" || out["mission_id"] != "walk-anywhere" {
		t.Fatalf("unexpected status body: %#v", out)
	}
	if out["briefing"] != "walk three bridges" {
		t.Fatalf("expected briefing in response, got %#v", out)
	}
}

func TestHandler_VertexVisited_NoSessionIs404(t *testing.T) {
	h := NewHandler(&missionSvcStub{
		vertexFn: func(crosserID, vertexID string) (app.Status, error) {
			return app.Status{}, fmt.Errorf("%w: %q", app.ErrNoSession, crosserID)
		},
	})

	body := `{"crosser_id":"ghost","vertex_id":"A"}`
	req := httptest.NewRequest(http.MethodPost, "/events/vertex", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.VertexVisited(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestHandler_EdgeCrossed_MissingEdgeID(t *testing.T) {
	h := NewHandler(&missionSvcStub{})

	req := httptest.NewRequest(http.MethodPost, "/events/edge", bytes.NewBufferString(`{"crosser_id":"p1"}`))
	rr := httptest.NewRecorder()

	h.EdgeCrossed(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandler_Status_RequiresCrosserID(t *testing.T) {
	h := NewHandler(&missionSvcStub{})

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rr := httptest.NewRecorder()

	h.Status(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandler_Status_ReturnsJourneyState(t *testing.T) {
	h := NewHandler(&missionSvcStub{
		statusFn: func(crosserID string) (app.Status, error) {
			st := okStatus(crosserID)
			st.JourneyType = journey.TypePath
			st.Length = 3
			return st, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/status?crosser_id=p1", nil)
	rr := httptest.NewRecorder()

	h.Status(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out["journey_type"] != "path" || out["length"] != float64(3) {
		t.Fatalf("unexpected status body: %#v", out)
	}
}

func TestHandler_Progress_ReturnsCompletedMissions(t *testing.T) {
	h := NewHandler(&missionSvcStub{
		progressFn: func(ctx context.Context, crosserID string) ([]string, error) {
			return []string{"walk-anywhere", "path-no-repeat-vertex"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/progress?crosser_id=p1", nil)
	rr := httptest.NewRecorder()

	h.Progress(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	completed, ok := out["completed"].([]any)
	if !ok || len(completed) != 2 {
		t.Fatalf("unexpected progress body: %#v", out)
	}
}

func TestHandler_Classify_ReturnsClassification(t *testing.T) {
	h := NewHandler(&missionSvcStub{
		classifyFn: func(courseDOT string, events []app.Event) (app.ClassifyResult, error) {
			if len(events) != 3 {
				return app.ClassifyResult{}, fmt.Errorf("expected 3 events, got %d", len(events))
			}
			return app.ClassifyResult{Type: journey.TypePath, Length: 2}, nil
		},
	})

	body := `{"events":[{"kind":"vertex","id":"A"},{"kind":"edge","id":"e1"},{"kind":"vertex","id":"B"}]}`
	req := httptest.NewRequest(http.MethodPost, "/classify", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.Classify(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out["type"] != "path" || out["length"] != float64(2) {
		t.Fatalf("unexpected classify body: %#v", out)
	}
}

func TestHandler_Classify_ErrorIs400(t *testing.T) {
	h := NewHandler(&missionSvcStub{
		classifyFn: func(courseDOT string, events []app.Event) (app.ClassifyResult, error) {
			return app.ClassifyResult{}, fmt.Errorf("unknown kind %q", "portal")
		},
	})

	body := `{"events":[{"kind":"portal","id":"x"}]}`
	req := httptest.NewRequest(http.MethodPost, "/classify", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.Classify(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandler_Mux_RoutesAllEndpoints(t *testing.T) {
	h := NewHandler(&missionSvcStub{
		statusFn: func(crosserID string) (app.Status, error) {
			return okStatus(crosserID), nil
		},
	})
	srv := httptest.NewServer(h.Mux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status?crosser_id=p1")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
}
