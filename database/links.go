package database

import (
	"context"

	"github.com/rpupo63/student-showcase-backend/errs"
	"github.com/rpupo63/student-showcase-backend/sanitize"
)

// CheckIDsExistence verifies that every id exists in table, using one
// OR-composed record-id filter. It fails listing the missing ids.
//
// This is a read-before-write consistency check, not a transaction: a
// referenced record can still be deleted between this check and the
// subsequent write.
func CheckIDsExistence(ctx context.Context, store Store, table string, ids ...string) error {
	if len(ids) == 0 {
		return errs.NewBadRequestError("no ID provided")
	}

	sanitizedIDs := sanitize.IDs(ids)
	if len(sanitizedIDs) == 0 {
		return errs.NewBadRequestError("no valid ID provided")
	}

	records, err := store.ListAll(ctx, table, ByIDs(sanitizedIDs...))
	if err != nil {
		return err
	}

	if len(records) != len(sanitizedIDs) {
		found := make(map[string]bool, len(records))
		for _, record := range records {
			found[record.ID] = true
		}
		var missing []string
		for _, id := range sanitizedIDs {
			if !found[id] {
				missing = append(missing, id)
			}
		}
		return errs.NewMissingReferenceError(table, missing)
	}

	return nil
}

// RetrieveLinkedDetails fetches the records referenced by ids from table.
// Empty or all-invalid input yields an empty slice, not an error.
func RetrieveLinkedDetails(ctx context.Context, store Store, table string, ids []string) ([]Record, error) {
	if len(ids) == 0 {
		return []Record{}, nil
	}

	sanitizedIDs := sanitize.IDs(ids)
	if len(sanitizedIDs) == 0 {
		return []Record{}, nil
	}

	records, err := store.ListAll(ctx, table, ByIDs(sanitizedIDs...))
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// ToArray normalizes a scalar-or-slice value into a string slice, the way
// link fields arrive in request bodies.
func ToArray(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	case string:
		if v == "" {
			return []string{}
		}
		return []string{v}
	default:
		return []string{}
	}
}

// StringsFromField reads a link field off a record as a string slice.
func StringsFromField(record Record, field string) []string {
	return ToArray(record.Fields[field])
}
