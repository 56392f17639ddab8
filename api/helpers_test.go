package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/rpupo63/student-showcase-backend/database"
)

var testConfig = map[string]string{
	"JWT_SECRET":  "test-secret",
	"BCRYPT_COST": "4",
}

func newTestRouter(t *testing.T, store database.Store) *chi.Mux {
	t.Helper()
	router, err := newRouter(store, withConfig(testConfig))
	if err != nil {
		t.Fatalf("building router: %v", err)
	}
	return router
}

// doJSON sends a JSON request through the router and returns the recorded
// response. An empty token leaves the request unauthenticated.
func doJSON(t *testing.T, router *chi.Mux, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var decoded map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding response %q: %v", recorder.Body.String(), err)
	}
	return decoded
}

// registerUser creates an account through the public endpoint and returns
// the token plus the user's record id.
func registerUser(t *testing.T, router *chi.Mux, store *database.MemoryStore, email string) (token, userID string) {
	t.Helper()

	recorder := doJSON(t, router, http.MethodPost, "/user", "", map[string]any{
		"email":      email,
		"password":   "secret1",
		"first_name": "Test",
		"last_name":  "User",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("register returned %d: %s", recorder.Code, recorder.Body.String())
	}
	token, _ = decodeResponse(t, recorder)["token"].(string)
	if token == "" {
		t.Fatal("register returned no token")
	}

	users, err := store.ListAll(context.Background(), database.TableUsers, database.ByFieldEquals("email", email))
	if err != nil || len(users) != 1 {
		t.Fatalf("looking up registered user: %v (%d records)", err, len(users))
	}
	return token, users[0].ID
}

// registerAdmin registers a user, flips its admin flag in the store and
// logs in again so the new token carries the flag.
func registerAdmin(t *testing.T, router *chi.Mux, store *database.MemoryStore, email string) (token, userID string) {
	t.Helper()

	_, userID = registerUser(t, router, store, email)
	err := store.PatchByID(context.Background(), database.TableUsers, []database.RecordPatch{{
		ID:     userID,
		Fields: map[string]any{"is_admin": true},
	}})
	if err != nil {
		t.Fatalf("promoting user: %v", err)
	}

	recorder := doJSON(t, router, http.MethodPost, "/login", "", map[string]any{
		"email":    email,
		"password": "secret1",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", recorder.Code, recorder.Body.String())
	}
	token, _ = decodeResponse(t, recorder)["token"].(string)
	if token == "" {
		t.Fatal("login returned no token")
	}
	return token, userID
}
