// Package validation declares one JSON schema per mutating endpoint and
// validates request bodies against them before any handler logic runs.
package validation

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/rpupo63/student-showcase-backend/errs"
)

// Validator holds the compiled schema for every request shape, keyed by
// the schema's $id.
type Validator struct {
	schemaValidators map[string]*gojsonschema.Schema
}

// NewValidator compiles every declared request schema. Schemas cannot
// reference each other.
func NewValidator() (*Validator, error) {
	type schemaHeader struct {
		ID string `json:"$id"`
	}

	validator := &Validator{schemaValidators: make(map[string]*gojsonschema.Schema, len(requestSchemas))}
	for _, str := range requestSchemas {
		header := schemaHeader{}
		if err := json.Unmarshal([]byte(str), &header); err != nil {
			return nil, fmt.Errorf("parse error '%v' in schema: '%s'", err, str)
		}
		if header.ID == "" {
			return nil, fmt.Errorf("schema does not contain $id: '%s'", str)
		}

		schema, err := gojsonschema.NewSchemaLoader().Compile(gojsonschema.NewStringLoader(str))
		if err != nil {
			return nil, fmt.Errorf("cannot compile schema %s: %w", header.ID, err)
		}
		validator.schemaValidators[header.ID] = schema
	}

	return validator, nil
}

// HasSchema returns true if schemaID is known.
func (v *Validator) HasSchema(schemaID string) bool {
	_, ok := v.schemaValidators[schemaID]
	return ok
}

// ValidateBytes validates a raw JSON document against schemaID. On schema
// violations it returns a validation ApiErr carrying field-level details.
func (v *Validator) ValidateBytes(document []byte, schemaID string) error {
	schema, ok := v.schemaValidators[schemaID]
	if !ok {
		return errs.NewInternalError(fmt.Sprintf("there is no schema %s", schemaID))
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return errs.NewMalformedPayloadError("JSON", err)
	}

	if result.Valid() {
		return nil
	}

	fieldErrors := make([]errs.FieldError, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		field := resultErr.Field()
		if field == "(root)" {
			if property, ok := resultErr.Details()["property"].(string); ok {
				field = property
			}
		}
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field:   field,
			Message: resultErr.Description(),
		})
	}
	return errs.NewValidationError(fieldErrors)
}

// Schema ids, one per validated endpoint.
const (
	SchemaLogin            = "login"
	SchemaRegister         = "register"
	SchemaUserUpdate       = "userUpdate"
	SchemaUserPromote      = "userPromote"
	SchemaProject          = "project"
	SchemaProjectUpdate    = "projectUpdate"
	SchemaProjectLike      = "projectLike"
	SchemaProjectPublish   = "projectPublish"
	SchemaCategory         = "category"
	SchemaCategoryUpdate   = "categoryUpdate"
	SchemaTechnology       = "technology"
	SchemaTechnologyUpdate = "technologyUpdate"
	SchemaComment          = "comment"
	SchemaCommentUpdate    = "commentUpdate"
	SchemaContact          = "contact"
)

var requestSchemas = []string{
	`{
		"$id": "login",
		"type": "object",
		"required": ["email", "password"],
		"properties": {
			"email": {"type": "string", "format": "email", "minLength": 1},
			"password": {"type": "string", "minLength": 1}
		}
	}`,
	`{
		"$id": "register",
		"type": "object",
		"required": ["email", "password", "first_name", "last_name"],
		"properties": {
			"email": {"type": "string", "format": "email", "minLength": 1},
			"password": {"type": "string", "minLength": 6},
			"first_name": {"type": "string", "minLength": 1, "maxLength": 100},
			"last_name": {"type": "string", "minLength": 1, "maxLength": 100}
		}
	}`,
	`{
		"$id": "userUpdate",
		"type": "object",
		"required": ["id"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"email": {"type": "string", "format": "email"},
			"first_name": {"type": "string", "minLength": 1, "maxLength": 100},
			"last_name": {"type": "string", "minLength": 1, "maxLength": 100},
			"phone": {"type": "string"},
			"address": {"type": "string"},
			"formation_interest": {"type": "string"},
			"password": {"type": "string", "minLength": 6}
		}
	}`,
	`{
		"$id": "userPromote",
		"type": "object",
		"required": ["id", "is_admin"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"is_admin": {"type": "boolean"}
		}
	}`,
	`{
		"$id": "project",
		"type": "object",
		"required": ["name", "created_by", "category", "description", "technologies"],
		"properties": {
			"name": {"type": "string", "minLength": 1, "maxLength": 200},
			"created_by": {"type": "string", "minLength": 1},
			"category": {"type": "string", "minLength": 1},
			"description": {"type": "string", "minLength": 1, "maxLength": 5000},
			"project_link": {"anyOf": [{"type": "string", "format": "uri"}, {"type": "string", "maxLength": 0}]},
			"technologies": {"type": "array", "items": {"type": "string"}, "minItems": 1},
			"image_url": {"anyOf": [{"type": "string", "format": "uri"}, {"type": "string", "maxLength": 0}]}
		}
	}`,
	`{
		"$id": "projectUpdate",
		"type": "object",
		"required": ["id", "name", "created_by", "category", "description", "technologies"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"name": {"type": "string", "minLength": 1, "maxLength": 200},
			"created_by": {"type": "string", "minLength": 1},
			"category": {"type": "string", "minLength": 1},
			"description": {"type": "string", "minLength": 1, "maxLength": 5000},
			"project_link": {"anyOf": [{"type": "string", "format": "uri"}, {"type": "string", "maxLength": 0}]},
			"technologies": {"type": "array", "items": {"type": "string"}, "minItems": 1},
			"image_url": {"anyOf": [{"type": "string", "format": "uri"}, {"type": "string", "maxLength": 0}]}
		}
	}`,
	`{
		"$id": "projectLike",
		"type": "object",
		"required": ["id", "user"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"user": {"type": "string", "minLength": 1}
		}
	}`,
	`{
		"$id": "projectPublish",
		"type": "object",
		"required": ["id", "publishing_status"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"publishing_status": {"type": "string", "enum": ["published", "hidden"]}
		}
	}`,
	`{
		"$id": "category",
		"type": "object",
		"required": ["category_name", "description"],
		"properties": {
			"category_name": {"type": "string", "minLength": 1, "maxLength": 100},
			"description": {"type": "string", "minLength": 1, "maxLength": 1000}
		}
	}`,
	`{
		"$id": "categoryUpdate",
		"type": "object",
		"required": ["id", "category_name", "description"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"category_name": {"type": "string", "minLength": 1, "maxLength": 100},
			"description": {"type": "string", "minLength": 1, "maxLength": 1000}
		}
	}`,
	`{
		"$id": "technology",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string", "minLength": 1, "maxLength": 100}
		}
	}`,
	`{
		"$id": "technologyUpdate",
		"type": "object",
		"required": ["id", "name"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"name": {"type": "string", "minLength": 1, "maxLength": 100}
		}
	}`,
	`{
		"$id": "comment",
		"type": "object",
		"required": ["comment", "project", "user"],
		"properties": {
			"comment": {"type": "string", "minLength": 1, "maxLength": 1000},
			"project": {"type": "string", "minLength": 1},
			"user": {"type": "string", "minLength": 1}
		}
	}`,
	`{
		"$id": "commentUpdate",
		"type": "object",
		"required": ["id", "comment"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"comment": {"type": "string", "minLength": 1, "maxLength": 1000}
		}
	}`,
	`{
		"$id": "contact",
		"type": "object",
		"required": ["first_name", "last_name", "email"],
		"properties": {
			"first_name": {"type": "string", "minLength": 1, "maxLength": 100},
			"last_name": {"type": "string", "minLength": 1, "maxLength": 100},
			"email": {"type": "string", "format": "email", "minLength": 1},
			"phone": {"type": "string"},
			"address": {"type": "string"},
			"formation_interest": {"type": "string"},
			"message": {"type": "string"}
		}
	}`,
}
