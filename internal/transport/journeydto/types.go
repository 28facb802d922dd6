package journeydto

import "github.com/graphacademy/journey/internal/app"

type StartMissionRequest struct {
	CrosserID string `json:"crosser_id,omitempty"`
	MissionID string `json:"mission_id"`
}

type VertexEventRequest struct {
	CrosserID string `json:"crosser_id"`
	VertexID  string `json:"vertex_id"`
}

type EdgeEventRequest struct {
	CrosserID string `json:"crosser_id"`
	EdgeID    string `json:"edge_id"`
}

type ResetRequest struct {
	CrosserID string `json:"crosser_id"`
}

type StatusResponse struct {
	CrosserID    string `json:"crosser_id"`
	MissionID    string `json:"mission_id"`
	State        string `json:"state"`
	JourneyType  string `json:"journey_type"`
	TargetType   string `json:"target_type"`
	Length       int    `json:"length"`
	Complete     bool   `json:"complete"`
	Briefing     string `json:"briefing,omitempty"`
	CompleteText string `json:"complete_text,omitempty"`
}

func StatusFrom(st app.Status) StatusResponse {
	return StatusResponse{
		CrosserID:    st.CrosserID,
		MissionID:    st.MissionID,
		State:        string(st.State),
		JourneyType:  string(st.JourneyType),
		TargetType:   string(st.TargetType),
		Length:       st.Length,
		Complete:     st.Complete,
		Briefing:     st.Briefing,
		CompleteText: st.CompleteText,
	}
}

type EventDTO struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

type ClassifyRequest struct {
	CourseDOT string     `json:"course_dot,omitempty"`
	Events    []EventDTO `json:"events"`
}

func (r ClassifyRequest) AppEvents() []app.Event {
	events := make([]app.Event, len(r.Events))
	for i, ev := range r.Events {
		events[i] = app.Event{Kind: ev.Kind, ID: ev.ID}
	}
	return events
}

type ClassifyResponse struct {
	Type      string   `json:"type"`
	Length    int      `json:"length"`
	Anomalies int      `json:"anomalies"`
	Warnings  []string `json:"warnings,omitempty"`
}

func ClassifyFrom(res app.ClassifyResult) ClassifyResponse {
	return ClassifyResponse{
		Type:      string(res.Type),
		Length:    res.Length,
		Anomalies: res.Anomalies,
		Warnings:  res.Warnings,
	}
}

type ProgressResponse struct {
	CrosserID string   `json:"crosser_id"`
	Completed []string `json:"completed"`
}
