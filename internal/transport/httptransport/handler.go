package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/graphacademy/journey/internal/app"
	"github.com/graphacademy/journey/internal/mission"
	"github.com/graphacademy/journey/internal/transport/journeydto"
)

type Handler struct {
	svc app.MissionService
}

func NewHandler(svc app.MissionService) *Handler {
	return &Handler{svc: svc}
}

// Mux wires every route onto a fresh ServeMux.
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/missions/start", h.StartMission)
	mux.HandleFunc("/events/vertex", h.VertexVisited)
	mux.HandleFunc("/events/edge", h.EdgeCrossed)
	mux.HandleFunc("/status", h.Status)
	mux.HandleFunc("/reset", h.Reset)
	mux.HandleFunc("/progress", h.Progress)
	mux.HandleFunc("/classify", h.Classify)
	return mux
}

func (h *Handler) StartMission(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in journeydto.StartMissionRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json", "details": err.Error()})
		return
	}
	if in.MissionID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "mission_id is required"})
		return
	}

	st, err := h.svc.StartMission(in.CrosserID, in.MissionID)
	if err != nil {
		writeJSON(w, statusFor(err), map[string]any{"error": "start failed", "details": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, journeydto.StatusFrom(st))
}

func (h *Handler) VertexVisited(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in journeydto.VertexEventRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json", "details": err.Error()})
		return
	}
	if in.VertexID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "vertex_id is required"})
		return
	}

	st, err := h.svc.VertexVisited(in.CrosserID, in.VertexID)
	if err != nil {
		writeJSON(w, statusFor(err), map[string]any{"error": "vertex event failed", "details": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, journeydto.StatusFrom(st))
}

func (h *Handler) EdgeCrossed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in journeydto.EdgeEventRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json", "details": err.Error()})
		return
	}
	if in.EdgeID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "edge_id is required"})
		return
	}

	st, err := h.svc.EdgeCrossed(in.CrosserID, in.EdgeID)
	if err != nil {
		writeJSON(w, statusFor(err), map[string]any{"error": "edge event failed", "details": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, journeydto.StatusFrom(st))
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	crosserID := r.URL.Query().Get("crosser_id")
	if crosserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "crosser_id is required"})
		return
	}

	st, err := h.svc.Status(crosserID)
	if err != nil {
		writeJSON(w, statusFor(err), map[string]any{"error": "status failed", "details": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, journeydto.StatusFrom(st))
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in journeydto.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json", "details": err.Error()})
		return
	}

	st, err := h.svc.Reset(in.CrosserID)
	if err != nil {
		writeJSON(w, statusFor(err), map[string]any{"error": "reset failed", "details": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, journeydto.StatusFrom(st))
}

func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	crosserID := r.URL.Query().Get("crosser_id")
	if crosserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "crosser_id is required"})
		return
	}

	completed, err := h.svc.Progress(r.Context(), crosserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "progress failed", "details": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, journeydto.ProgressResponse{CrosserID: crosserID, Completed: completed})
}

func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in journeydto.ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json", "details": err.Error()})
		return
	}

	res, err := h.svc.ClassifyEvents(in.CourseDOT, in.AppEvents())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "classify failed", "details": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, journeydto.ClassifyFrom(res))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, app.ErrUnknownMission), errors.Is(err, app.ErrNoSession):
		return http.StatusNotFound
	case errors.Is(err, mission.ErrStartDebounced):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
