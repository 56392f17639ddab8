package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/student-showcase-backend/database"
	"github.com/rpupo63/student-showcase-backend/errs"
	"github.com/rpupo63/student-showcase-backend/models"
	"github.com/rpupo63/student-showcase-backend/sanitize"
	"github.com/rpupo63/student-showcase-backend/services"
)

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     database.Store
	config    map[string]string
}

func newContactHandler(store database.Store, cfg map[string]string) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		config:    cfg,
	}
}

type contactRequest struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	FormationInterest string `json:"formation_interest"`
	Message           string `json:"message"`
}

// createContact stores a contact request from the public form with status
// "new" and sends a best-effort notification email.
func (h contactHandler) createContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body contactRequest
		if err := decodeBody(r, h.logger, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		contact := models.Contact{
			FirstName:         sanitize.Text(body.FirstName),
			LastName:          sanitize.Text(body.LastName),
			Email:             sanitize.Email(body.Email),
			Phone:             sanitize.Text(body.Phone),
			Address:           sanitize.Text(body.Address),
			FormationInterest: sanitize.Text(body.FormationInterest),
			Message:           sanitize.Text(body.Message),
			Status:            models.ContactStatusNew,
		}

		record, err := h.store.Insert(r.Context(), database.TableContacts, map[string]any{
			"first_name":         contact.FirstName,
			"last_name":          contact.LastName,
			"email":              contact.Email,
			"phone":              contact.Phone,
			"address":            contact.Address,
			"formation_interest": contact.FormationInterest,
			"message":            contact.Message,
			"status":             contact.Status,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		go services.NotifyContactRequest(h.config, contact)

		h.responder.WriteJSON(w, map[string]any{
			"success": true,
			"message": "Your request has been sent successfully!",
			"data":    flatten(record),
		})
	}
}

// getAllContacts lists every contact request.
func (h contactHandler) getAllContacts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := h.store.ListAll(r.Context(), database.TableContacts, nil)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, flattenAll(records))
	}
}

// updateContactStatus moves a contact request through its processing
// states; a missing status falls back to "new".
func (h contactHandler) updateContactStatus() http.HandlerFunc {
	type request struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body request
		if err := decodeBody(r, h.logger, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if body.ID == "" {
			h.responder.WriteError(w, errs.NewMissingRecordIDError("contact"))
			return
		}

		if err := database.CheckIDsExistence(r.Context(), h.store, database.TableContacts, body.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		status := body.Status
		if status == "" {
			status = models.ContactStatusNew
		}

		err := h.store.PatchByID(r.Context(), database.TableContacts, []database.RecordPatch{{
			ID:     sanitize.ID(body.ID),
			Fields: map[string]any{"status": status},
		}})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "Update done"})
	}
}
