package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rpupo63/student-showcase-backend/database"
	"github.com/rpupo63/student-showcase-backend/errs"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError maps an error to an HTTP response. Every expected failure is
// an *errs.ApiErr carrying its own status code; anything else is an
// unexpected internal error.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		r.WriteJSON(w, map[string]any{
			"error":   "An internal error occurred",
			"details": err.Error(),
		})
		return
	}

	response := map[string]any{
		"error": apiErr.Error(),
	}

	// Field-level failures from schema validation
	if len(apiErr.Fields) > 0 {
		response["details"] = apiErr.Fields
	} else if apiErr.Details != "" {
		response["details"] = apiErr.Details
	}

	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}

	if apiErr.StatusCode >= 500 && apiErr.Cause != nil {
		r.logger.Error().Msg(apiErr.GetFullError())
	}

	w.WriteHeader(apiErr.StatusCode)
	r.WriteJSON(w, response)
}

// flatten shapes a store record the way the external API returns it: the
// id merged into the field map.
func flatten(record database.Record) map[string]any {
	out := make(map[string]any, len(record.Fields)+1)
	for key, value := range record.Fields {
		out[key] = value
	}
	out["id"] = record.ID
	return out
}

func flattenAll(records []database.Record) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, record := range records {
		out = append(out, flatten(record))
	}
	return out
}
