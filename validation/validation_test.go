package validation_test

import (
	"errors"
	"testing"

	"github.com/rpupo63/student-showcase-backend/errs"
	"github.com/rpupo63/student-showcase-backend/validation"
)

func newValidator(t *testing.T) *validation.Validator {
	t.Helper()
	v, err := validation.NewValidator()
	if err != nil {
		t.Fatalf("compiling schemas: %v", err)
	}
	return v
}

func fieldErrors(t *testing.T, err error) []errs.FieldError {
	t.Helper()
	if !errs.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *errs.ApiErr, got %T", err)
	}
	if apiErr.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", apiErr.StatusCode)
	}
	return apiErr.Fields
}

func hasField(fields []errs.FieldError, name string) bool {
	for _, f := range fields {
		if f.Field == name {
			return true
		}
	}
	return false
}

func TestValidator_HasSchema(t *testing.T) {
	v := newValidator(t)

	for _, id := range []string{
		validation.SchemaLogin, validation.SchemaRegister, validation.SchemaUserUpdate,
		validation.SchemaUserPromote, validation.SchemaProject, validation.SchemaProjectUpdate,
		validation.SchemaProjectLike, validation.SchemaProjectPublish, validation.SchemaCategory,
		validation.SchemaCategoryUpdate, validation.SchemaTechnology, validation.SchemaTechnologyUpdate,
		validation.SchemaComment, validation.SchemaCommentUpdate, validation.SchemaContact,
	} {
		if !v.HasSchema(id) {
			t.Fatalf("schema %s not compiled", id)
		}
	}
	if v.HasSchema("nonexistent") {
		t.Fatal("unknown schema reported as present")
	}
}

func TestValidator_Register(t *testing.T) {
	v := newValidator(t)

	t.Run("valid payload passes", func(t *testing.T) {
		body := []byte(`{"email":"ada@example.com","password":"secret1","first_name":"Ada","last_name":"Lovelace"}`)
		if err := v.ValidateBytes(body, validation.SchemaRegister); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})

	t.Run("short password rejected with field detail", func(t *testing.T) {
		body := []byte(`{"email":"ada@example.com","password":"123","first_name":"Ada","last_name":"Lovelace"}`)
		fields := fieldErrors(t, v.ValidateBytes(body, validation.SchemaRegister))
		if !hasField(fields, "password") {
			t.Fatalf("expected password field error, got %v", fields)
		}
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		body := []byte(`{"email":"not-an-email","password":"secret1","first_name":"Ada","last_name":"Lovelace"}`)
		fields := fieldErrors(t, v.ValidateBytes(body, validation.SchemaRegister))
		if !hasField(fields, "email") {
			t.Fatalf("expected email field error, got %v", fields)
		}
	})

	t.Run("missing required field named", func(t *testing.T) {
		body := []byte(`{"email":"ada@example.com","password":"secret1","first_name":"Ada"}`)
		fields := fieldErrors(t, v.ValidateBytes(body, validation.SchemaRegister))
		if !hasField(fields, "last_name") {
			t.Fatalf("expected last_name field error, got %v", fields)
		}
	})
}

func TestValidator_Project(t *testing.T) {
	v := newValidator(t)

	valid := `{"name":"Demo","created_by":"recU1","category":"recC1","description":"A demo","technologies":["recT1"]}`

	t.Run("valid payload passes", func(t *testing.T) {
		if err := v.ValidateBytes([]byte(valid), validation.SchemaProject); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})

	t.Run("empty technologies rejected", func(t *testing.T) {
		body := []byte(`{"name":"Demo","created_by":"recU1","category":"recC1","description":"A demo","technologies":[]}`)
		fields := fieldErrors(t, v.ValidateBytes(body, validation.SchemaProject))
		if !hasField(fields, "technologies") {
			t.Fatalf("expected technologies field error, got %v", fields)
		}
	})

	t.Run("empty project_link accepted", func(t *testing.T) {
		body := []byte(`{"name":"Demo","created_by":"recU1","category":"recC1","description":"A demo","technologies":["recT1"],"project_link":""}`)
		if err := v.ValidateBytes(body, validation.SchemaProject); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})

	t.Run("uri project_link accepted", func(t *testing.T) {
		body := []byte(`{"name":"Demo","created_by":"recU1","category":"recC1","description":"A demo","technologies":["recT1"],"project_link":"https://example.com"}`)
		if err := v.ValidateBytes(body, validation.SchemaProject); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})
}

func TestValidator_ProjectPublish(t *testing.T) {
	v := newValidator(t)

	t.Run("known status passes", func(t *testing.T) {
		body := []byte(`{"id":"recP1","publishing_status":"published"}`)
		if err := v.ValidateBytes(body, validation.SchemaProjectPublish); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		body := []byte(`{"id":"recP1","publishing_status":"archived"}`)
		fields := fieldErrors(t, v.ValidateBytes(body, validation.SchemaProjectPublish))
		if !hasField(fields, "publishing_status") {
			t.Fatalf("expected publishing_status field error, got %v", fields)
		}
	})
}

func TestValidator_MalformedJSON(t *testing.T) {
	v := newValidator(t)

	err := v.ValidateBytes([]byte(`{"email":`), validation.SchemaLogin)
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 {
		t.Fatalf("expected 400 for malformed JSON, got %v", err)
	}
	if errs.IsValidationError(err) {
		t.Fatal("malformed JSON should not be reported as a schema violation")
	}
}

func TestValidator_UnknownSchema(t *testing.T) {
	v := newValidator(t)

	err := v.ValidateBytes([]byte(`{}`), "nope")
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 500 {
		t.Fatalf("expected internal error for unknown schema, got %v", err)
	}
}
