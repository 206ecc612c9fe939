package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"

	"github.com/vytor/killstats/internal/errors"
	"github.com/vytor/killstats/internal/logger"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Warn("failed to write response: %v", err)
	}
}

const defaultMaxDumpBytes = 10 << 20

// dumpRequest is the JSON body of the ingest endpoints. "data" is accepted as
// an alias of "text" for clients of the legacy /api/boss-data endpoint.
type dumpRequest struct {
	Text *string `json:"text"`
	Data *string `json:"data"`
}

// readDumpText extracts the raw dump from either a text/plain body or a JSON
// body, refusing bodies larger than limit.
func readDumpText(w http.ResponseWriter, r *http.Request, limit int64) (string, error) {
	if limit <= 0 {
		limit = defaultMaxDumpBytes
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return "", errors.NewPayloadTooLargeError(limit)
		}
		return "", errors.NewBadRequestError("failed to read request body")
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "text/plain" {
		return string(body), nil
	}

	var req dumpRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return "", errors.NewBadRequestError("missing or invalid text field")
	}
	switch {
	case req.Text != nil:
		return *req.Text, nil
	case req.Data != nil:
		return *req.Data, nil
	default:
		return "", errors.NewBadRequestError("missing or invalid text field")
	}
}
