package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rpupo63/student-showcase-backend/errs"
)

// decodeBody decodes the request body into dst, logging the offending
// payload on failure.
func decodeBody(r *http.Request, logger zerolog.Logger, dst any) error {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to read request body")
		return errs.NewBadRequestError("failed to read request body")
	}

	if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(dst); err != nil {
		logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode request body")
		return errs.NewBadRequestError("malformed request body")
	}
	return nil
}
