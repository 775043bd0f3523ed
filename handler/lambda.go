package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
)

const basePath = "/api/contact"

// Handle serves API Gateway proxy requests for the contact routes.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	cid := correlationID(req.Headers)
	log := h.log.With("correlation_id", cid, "method", req.HTTPMethod, "path", req.Path)

	var res result
	path := strings.TrimRight(req.Path, "/")
	switch {
	case req.HTTPMethod == http.MethodPost && path == basePath:
		body, err := requestBody(req)
		if err != nil {
			log.WarnContext(ctx, "undecodable request body", "err", err)
			res = result{status: http.StatusInternalServerError, body: errorResponse{Error: errServer}}
			break
		}
		res = h.create(ctx, log, body)
	case req.HTTPMethod == http.MethodGet && path == basePath+"/admin":
		res = h.list(ctx, log)
	case req.HTTPMethod == http.MethodDelete && strings.HasPrefix(path, basePath+"/"):
		id := req.PathParameters["id"]
		if id == "" {
			id = strings.TrimPrefix(path, basePath+"/")
		}
		if strings.Contains(id, "/") {
			res = result{status: http.StatusNotFound, body: errorResponse{Error: "Not Found"}}
			break
		}
		res = h.remove(ctx, log, id)
	default:
		res = result{status: http.StatusNotFound, body: errorResponse{Error: "Not Found"}}
	}

	log.InfoContext(ctx, "request handled", "status", res.status)
	return proxyResponse(res, cid), nil
}

func requestBody(req events.APIGatewayProxyRequest) ([]byte, error) {
	if req.IsBase64Encoded {
		return base64.StdEncoding.DecodeString(req.Body)
	}
	return []byte(req.Body), nil
}

func proxyResponse(res result, cid string) events.APIGatewayProxyResponse {
	headers := map[string]string{
		"Content-Type":    "application/json",
		correlationHeader: cid,
	}
	body, err := json.Marshal(res.body)
	if err != nil {
		body, _ = json.Marshal(errorResponse{Error: errServer})
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError, Headers: headers, Body: string(body)}
	}
	return events.APIGatewayProxyResponse{StatusCode: res.status, Headers: headers, Body: string(body)}
}

// correlationID returns the caller supplied id (header name matched case-insensitively)
// or a new one.
func correlationID(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, correlationHeader) && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return uuid.NewString()
}
