package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/student-showcase-backend/database"
	"github.com/rpupo63/student-showcase-backend/errs"
	"github.com/rpupo63/student-showcase-backend/sanitize"
	"github.com/rpupo63/student-showcase-backend/services"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     database.Store
	auth      *services.AuthService
}

func newUserHandler(store database.Store, auth *services.AuthService) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		auth:      auth,
	}
}

// register creates an account and returns a signed token.
func (h userHandler) register() http.HandlerFunc {
	type request struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body request
		if err := decodeBody(r, h.logger, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, err := h.auth.Register(r.Context(), services.RegisterInput{
			Email:     body.Email,
			Password:  body.Password,
			FirstName: body.FirstName,
			LastName:  body.LastName,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"token": token})
	}
}

// login verifies credentials and returns a signed token.
func (h userHandler) login() http.HandlerFunc {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body request
		if err := decodeBody(r, h.logger, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, err := h.auth.Login(r.Context(), body.Email, body.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"token": token})
	}
}

// getAllUsers lists every user record.
func (h userHandler) getAllUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := h.store.ListAll(r.Context(), database.TableUsers, nil)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, flattenAll(records))
	}
}

// updateUser lets a user modify their own record, or an admin modify any.
// Only the supplied fields are patched; a new password is re-hashed.
func (h userHandler) updateUser() http.HandlerFunc {
	type request struct {
		ID        string  `json:"id"`
		Email     string  `json:"email"`
		Password  string  `json:"password"`
		FirstName string  `json:"first_name"`
		LastName  string  `json:"last_name"`
		Phone     *string `json:"phone"`
		Address   *string `json:"address"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body request
		if err := decodeBody(r, h.logger, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		claims := claimsFromCtx(r.Context())
		if claims == nil || (claims.UserID != body.ID && !claims.IsAdmin) {
			h.responder.WriteError(w, errs.NewForbiddenError("you can only modify your own account"))
			return
		}

		if err := database.CheckIDsExistence(r.Context(), h.store, database.TableUsers, body.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updateData := map[string]any{}
		if body.Email != "" {
			updateData["email"] = sanitize.Email(body.Email)
		}
		if body.FirstName != "" {
			updateData["first_name"] = sanitize.Text(body.FirstName)
		}
		if body.LastName != "" {
			updateData["last_name"] = sanitize.Text(body.LastName)
		}
		if body.Phone != nil {
			updateData["phone"] = sanitize.Text(*body.Phone)
		}
		if body.Address != nil {
			updateData["address"] = sanitize.Text(*body.Address)
		}
		if body.Password != "" {
			hashed, err := h.auth.HashPassword(body.Password)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			updateData["password"] = hashed
		}

		err := h.store.PatchByID(r.Context(), database.TableUsers, []database.RecordPatch{{
			ID:     body.ID,
			Fields: updateData,
		}})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "Update done"})
	}
}

// promoteUser sets or clears the admin flag on a user.
func (h userHandler) promoteUser() http.HandlerFunc {
	type request struct {
		ID      string `json:"id"`
		IsAdmin bool   `json:"is_admin"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body request
		if err := decodeBody(r, h.logger, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := database.CheckIDsExistence(r.Context(), h.store, database.TableUsers, body.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		err := h.store.PatchByID(r.Context(), database.TableUsers, []database.RecordPatch{{
			ID:     sanitize.ID(body.ID),
			Fields: map[string]any{"is_admin": body.IsAdmin},
		}})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "Update done"})
	}
}

// deleteUser removes a user record, self-or-admin only.
func (h userHandler) deleteUser() http.HandlerFunc {
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
			h.responder.WriteError(w, errs.NewMissingRecordIDError("user"))
			return
		}

		claims := claimsFromCtx(r.Context())
		if claims == nil || (claims.UserID != body.ID && !claims.IsAdmin) {
			h.responder.WriteError(w, errs.NewForbiddenError("you can only delete your own account"))
			return
		}

		if err := database.CheckIDsExistence(r.Context(), h.store, database.TableUsers, body.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.DeleteByIDs(r.Context(), database.TableUsers, []string{body.ID}); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "Delete done"})
	}
}
