package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/student-showcase-backend/database"
	"github.com/rpupo63/student-showcase-backend/errs"
	"github.com/rpupo63/student-showcase-backend/sanitize"
)

type categoryHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     database.Store
}

func newCategoryHandler(store database.Store) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

type categoryRequest struct {
	ID           string `json:"id"`
	CategoryName string `json:"category_name"`
	Description  string `json:"description"`
}

// getAllCategories lists every category.
func (h categoryHandler) getAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := h.store.ListAll(r.Context(), database.TableCategories, nil)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, flattenAll(records))
	}
}

// createCategory adds a category.
func (h categoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body categoryRequest
		if err := decodeBody(r, h.logger, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		record, err := h.store.Insert(r.Context(), database.TableCategories, map[string]any{
			"category_name": sanitize.Text(body.CategoryName),
			"description":   sanitize.Text(body.Description),
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, flatten(record))
	}
}

// updateCategory overwrites a category's name and description.
func (h categoryHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body categoryRequest
		if err := decodeBody(r, h.logger, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := database.CheckIDsExistence(r.Context(), h.store, database.TableCategories, body.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		err := h.store.PatchByID(r.Context(), database.TableCategories, []database.RecordPatch{{
			ID: sanitize.ID(body.ID),
			Fields: map[string]any{
				"category_name": sanitize.Text(body.CategoryName),
				"description":   sanitize.Text(body.Description),
			},
		}})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "Update done"})
	}
}

// deleteCategory removes a category record.
func (h categoryHandler) deleteCategory() http.HandlerFunc {
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
			h.responder.WriteError(w, errs.NewMissingRecordIDError("category"))
			return
		}

		if err := database.CheckIDsExistence(r.Context(), h.store, database.TableCategories, body.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.DeleteByIDs(r.Context(), database.TableCategories, []string{body.ID}); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "Delete done"})
	}
}
