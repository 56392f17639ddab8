package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/student-showcase-backend/database"
	"github.com/rpupo63/student-showcase-backend/errs"
	"github.com/rpupo63/student-showcase-backend/sanitize"
)

type technologyHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     database.Store
}

func newTechnologyHandler(store database.Store) technologyHandler {
	logger := log.With().Str("handlerName", "technologyHandler").Logger()

	return technologyHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

type technologyRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// getAllTechnologies lists every technology.
func (h technologyHandler) getAllTechnologies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := h.store.ListAll(r.Context(), database.TableTechnologies, nil)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, flattenAll(records))
	}
}

// createTechnology adds a technology.
func (h technologyHandler) createTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body technologyRequest
		if err := decodeBody(r, h.logger, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		record, err := h.store.Insert(r.Context(), database.TableTechnologies, map[string]any{
			"name": sanitize.Text(body.Name),
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, flatten(record))
	}
}

// updateTechnology renames a technology.
func (h technologyHandler) updateTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body technologyRequest
		if err := decodeBody(r, h.logger, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := database.CheckIDsExistence(r.Context(), h.store, database.TableTechnologies, body.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		err := h.store.PatchByID(r.Context(), database.TableTechnologies, []database.RecordPatch{{
			ID: sanitize.ID(body.ID),
			Fields: map[string]any{
				"name": sanitize.Text(body.Name),
			},
		}})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "Update done"})
	}
}

// deleteTechnology removes a technology record.
func (h technologyHandler) deleteTechnology() http.HandlerFunc {
	type request struct {
		ID string `json:"id"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body request
		if err := decodeBody(r, h.logger, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if body.ID == "" {
			h.responder.WriteError(w, errs.NewMissingRecordIDError("technology"))
			return
		}

		if err := database.CheckIDsExistence(r.Context(), h.store, database.TableTechnologies, body.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.DeleteByIDs(r.Context(), database.TableTechnologies, []string{body.ID}); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "Delete done"})
	}
}
