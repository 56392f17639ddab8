package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/rpupo63/student-showcase-backend/database"
)

func TestCreateComment(t *testing.T) {
	store := database.NewMemoryStore()
	store.SetCreatedTimeField(database.TableComments, "creation_date")
	router := newTestRouter(t, store)
	adaToken, adaID := registerUser(t, router, store, "ada@example.com")

	project, err := store.Insert(context.Background(), database.TableProjects, map[string]any{"name": "Showcase"})
	if err != nil {
		t.Fatalf("seeding project: %v", err)
	}

	t.Run("comment stored with store-computed creation date", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/comment", adaToken, map[string]any{
			"comment": "great work",
			"project": project.ID,
			"user":    adaID,
		})
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
		response := decodeResponse(t, recorder)
		commentID, _ := response["id"].(string)
		record, ok := store.Get(database.TableComments, commentID)
		if !ok {
			t.Fatal("comment not in store")
		}
		if record.Fields["comment"] != "great work" {
			t.Fatalf("unexpected comment text: %v", record.Fields["comment"])
		}
		if stamp, _ := record.Fields["creation_date"].(string); stamp == "" {
			t.Fatal("expected store-computed creation_date")
		}
	})

	t.Run("cannot comment as someone else", func(t *testing.T) {
		_, bobID := registerUser(t, router, store, "bob@example.com")
		recorder := doJSON(t, router, http.MethodPost, "/comment", adaToken, map[string]any{
			"comment": "impersonated",
			"project": project.ID,
			"user":    bobID,
		})
		if recorder.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d: %s", recorder.Code, recorder.Body.String())
		}
	})

	t.Run("unknown project is rejected", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/comment", adaToken, map[string]any{
			"comment": "lost",
			"project": "recMissingProj",
			"user":    adaID,
		})
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", recorder.Code, recorder.Body.String())
		}
	})

	t.Run("unauthenticated is rejected", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/comment", "", map[string]any{
			"comment": "anonymous",
			"project": project.ID,
			"user":    adaID,
		})
		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", recorder.Code, recorder.Body.String())
		}
	})
}

func TestUpdateAndDeleteComment_AdminOnly(t *testing.T) {
	store := database.NewMemoryStore()
	router := newTestRouter(t, store)
	userToken, userID := registerUser(t, router, store, "ada@example.com")
	adminToken, _ := registerAdmin(t, router, store, "root@example.com")

	comment, err := store.Insert(context.Background(), database.TableComments, map[string]any{
		"comment": "original",
		"user":    []string{userID},
	})
	if err != nil {
		t.Fatalf("seeding comment: %v", err)
	}

	t.Run("author cannot edit through the admin route", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPut, "/comment", userToken, map[string]any{
			"id":      comment.ID,
			"comment": "edited",
		})
		if recorder.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d: %s", recorder.Code, recorder.Body.String())
		}
	})

	t.Run("admin edits the text", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPut, "/comment", adminToken, map[string]any{
			"id":      comment.ID,
			"comment": "moderated",
		})
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
		record, _ := store.Get(database.TableComments, comment.ID)
		if record.Fields["comment"] != "moderated" {
			t.Fatalf("comment not updated: %v", record.Fields["comment"])
		}
	})

	t.Run("admin deletes", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodDelete, "/comment", adminToken, map[string]any{"id": comment.ID})
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
		if store.Count(database.TableComments) != 0 {
			t.Fatal("comment still present after delete")
		}
	})
}

func TestGetAllComments_RequiresAuthentication(t *testing.T) {
	store := database.NewMemoryStore()
	router := newTestRouter(t, store)
	token, _ := registerUser(t, router, store, "ada@example.com")

	if recorder := doJSON(t, router, http.MethodGet, "/comment", "", nil); recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
	if recorder := doJSON(t, router, http.MethodGet, "/comment", token, nil); recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
}
