package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/student-showcase-backend/database"
	"github.com/rpupo63/student-showcase-backend/errs"
	"github.com/rpupo63/student-showcase-backend/sanitize"
)

type commentHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     database.Store
}

func newCommentHandler(store database.Store) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// getAllComments lists every comment.
func (h commentHandler) getAllComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := h.store.ListAll(r.Context(), database.TableComments, nil)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, flattenAll(records))
	}
}

// createComment stores a comment on a project. Callers can only comment
// under their own identity; the project must exist. The creation date is
// computed by the store, never sent.
func (h commentHandler) createComment() http.HandlerFunc {
	type request struct {
		Comment string `json:"comment"`
		Project string `json:"project"`
		User    string `json:"user"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body request
		if err := decodeBody(r, h.logger, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		claims := claimsFromCtx(r.Context())
		if claims == nil || claims.UserID == "" {
			h.responder.WriteError(w, errs.NewUnauthorizedError("user not authenticated"))
			return
		}
		if claims.UserID != body.User {
			h.responder.WriteError(w, errs.NewForbiddenError("you can only comment with your own account"))
			return
		}

		if err := database.CheckIDsExistence(r.Context(), h.store, database.TableProjects, body.Project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		record, err := h.store.Insert(r.Context(), database.TableComments, map[string]any{
			"comment": sanitize.Text(body.Comment),
			"project": []string{body.Project},
			"user":    []string{body.User},
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, flatten(record))
	}
}

// updateComment overwrites a comment's text.
func (h commentHandler) updateComment() http.HandlerFunc {
	type request struct {
		ID      string `json:"id"`
		Comment string `json:"comment"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body request
		if err := decodeBody(r, h.logger, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := database.CheckIDsExistence(r.Context(), h.store, database.TableComments, body.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		err := h.store.PatchByID(r.Context(), database.TableComments, []database.RecordPatch{{
			ID: sanitize.ID(body.ID),
			Fields: map[string]any{
				"comment": sanitize.Text(body.Comment),
			},
		}})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "Update done"})
	}
}

// deleteComment removes a comment record.
func (h commentHandler) deleteComment() http.HandlerFunc {
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
			h.responder.WriteError(w, errs.NewMissingRecordIDError("comment"))
			return
		}

		if err := database.CheckIDsExistence(r.Context(), h.store, database.TableComments, body.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.DeleteByIDs(r.Context(), database.TableComments, []string{body.ID}); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "Delete done"})
	}
}
