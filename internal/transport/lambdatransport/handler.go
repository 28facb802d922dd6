package lambdatransport

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/graphacademy/journey/internal/app"
	"github.com/graphacademy/journey/internal/transport/journeydto"
)

// Handler exposes the stateless classify surface as a Lambda behind API
// Gateway. Session state never lives here; the function classifies the
// event sequence it was handed and returns.
type Handler struct {
	svc app.MissionService
}

func NewHandler(svc app.MissionService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Classify(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	body, err := readBody(req)
	if err != nil {
		return jsonResp(http.StatusBadRequest, map[string]any{"error": "invalid body", "details": err.Error()}), nil
	}

	var in journeydto.ClassifyRequest
	if err := json.Unmarshal(body, &in); err != nil {
		return jsonResp(http.StatusBadRequest, map[string]any{"error": "invalid json", "details": err.Error()}), nil
	}

	res, err := h.svc.ClassifyEvents(in.CourseDOT, in.AppEvents())
	if err != nil {
		return jsonResp(http.StatusBadRequest, map[string]any{"error": "classify failed", "details": err.Error()}), nil
	}
	return jsonResp(http.StatusOK, journeydto.ClassifyFrom(res)), nil
}

func readBody(req events.APIGatewayV2HTTPRequest) ([]byte, error) {
	if req.IsBase64Encoded {
		return base64.StdEncoding.DecodeString(req.Body)
	}
	return []byte(req.Body), nil
}

func jsonResp(status int, body any) events.APIGatewayV2HTTPResponse {
	b, _ := json.Marshal(body)
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"content-type": "application/json"},
		Body:       string(b),
	}
}
