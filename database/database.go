package database

import "context"

// Table names in the hosted base.
const (
	TableUsers        = "Users"
	TableProjects     = "Projects"
	TableCategories   = "Categories"
	TableTechnologies = "Technologies"
	TableComments     = "Comments"
	TableContacts     = "Contacts"
)

// Record is one row of a table: the store-assigned id plus a mapping of
// field name to value. The id is immutable once assigned.
type Record struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// RecordPatch names the fields to overwrite on an existing record.
// Array-valued fields are replaced wholesale, never merged.
type RecordPatch struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Store is the port to the external record store. Implementations do not
// retry and do not provide cross-operation transactional guarantees.
type Store interface {
	// Insert creates one record and returns it with its assigned id.
	Insert(ctx context.Context, table string, fields map[string]any) (Record, error)

	// ListAll returns every record matching filter (nil means all),
	// exhausting the store's internal pagination into one ordered slice.
	ListAll(ctx context.Context, table string, filter *Filter) ([]Record, error)

	// PatchByID overwrites the named fields of existing records.
	PatchByID(ctx context.Context, table string, patches []RecordPatch) error

	// DeleteByIDs removes records by id.
	DeleteByIDs(ctx context.Context, table string, ids []string) error
}
