package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rpupo63/student-showcase-backend/errs"
)

func TestCheckIDsExistence(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	web, err := store.Insert(ctx, TableCategories, map[string]any{"category_name": "Web"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	t.Run("existing id passes", func(t *testing.T) {
		if err := CheckIDsExistence(ctx, store, TableCategories, web.ID); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})

	t.Run("missing id reported with the id and table", func(t *testing.T) {
		err := CheckIDsExistence(ctx, store, TableCategories, web.ID, "recMissing1")
		if !errs.IsMissingReferenceError(err) {
			t.Fatalf("expected missing-reference error, got %v", err)
		}
		var apiErr *errs.ApiErr
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *errs.ApiErr, got %T", err)
		}
		if apiErr.StatusCode != 400 {
			t.Fatalf("expected 400, got %d", apiErr.StatusCode)
		}
		if !strings.Contains(apiErr.Details, "recMissing1") || !strings.Contains(apiErr.Details, TableCategories) {
			t.Fatalf("error should name the missing id and table: %s", apiErr.Details)
		}
		if strings.Contains(apiErr.Details, web.ID) {
			t.Fatalf("existing id should not be reported missing: %s", apiErr.Details)
		}
	})

	t.Run("no ids is a bad request", func(t *testing.T) {
		err := CheckIDsExistence(ctx, store, TableCategories)
		var apiErr *errs.ApiErr
		if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 {
			t.Fatalf("expected 400, got %v", err)
		}
	})

	t.Run("all-invalid ids is a bad request", func(t *testing.T) {
		err := CheckIDsExistence(ctx, store, TableCategories, "''", ")(")
		var apiErr *errs.ApiErr
		if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 {
			t.Fatalf("expected 400, got %v", err)
		}
	})

	t.Run("sanitized id still matches", func(t *testing.T) {
		if err := CheckIDsExistence(ctx, store, TableCategories, " "+web.ID+" "); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})
}

func TestRetrieveLinkedDetails(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	golang, err := store.Insert(ctx, TableTechnologies, map[string]any{"name": "Go"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	t.Run("fetches referenced records", func(t *testing.T) {
		records, err := RetrieveLinkedDetails(ctx, store, TableTechnologies, []string{golang.ID})
		if err != nil {
			t.Fatalf("retrieve: %v", err)
		}
		if len(records) != 1 || records[0].ID != golang.ID {
			t.Fatalf("expected the Go record, got %v", records)
		}
	})

	t.Run("empty input yields empty slice", func(t *testing.T) {
		records, err := RetrieveLinkedDetails(ctx, store, TableTechnologies, nil)
		if err != nil {
			t.Fatalf("retrieve: %v", err)
		}
		if records == nil || len(records) != 0 {
			t.Fatalf("expected non-nil empty slice, got %v", records)
		}
	})

	t.Run("all-invalid ids yield empty slice", func(t *testing.T) {
		records, err := RetrieveLinkedDetails(ctx, store, TableTechnologies, []string{"''"})
		if err != nil {
			t.Fatalf("retrieve: %v", err)
		}
		if len(records) != 0 {
			t.Fatalf("expected no records, got %v", records)
		}
	})
}

func TestToArray(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{"nil", nil, []string{}},
		{"string slice", []string{"a", "b"}, []string{"a", "b"}},
		{"any slice", []any{"a", 3, "b"}, []string{"a", "b"}},
		{"scalar string", "a", []string{"a"}},
		{"empty string", "", []string{}},
		{"unsupported type", 42, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToArray(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("ToArray(%v) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ToArray(%v) = %v, want %v", tt.input, got, tt.want)
				}
			}
		})
	}
}
