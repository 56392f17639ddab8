package database

import (
	"fmt"
	"strings"

	"github.com/rpupo63/student-showcase-backend/sanitize"
)

// Filter selects records either by a set of record ids or by one
// field-equality predicate. The Airtable backend renders it to a
// filterByFormula expression; the in-memory store matches it directly.
// A nil Filter matches everything.
type Filter struct {
	// IDs selects records whose store-assigned id is in the set.
	IDs []string

	// Field/Equals selects records where the named field equals the value.
	Field  string
	Equals string
}

// ByIDs builds a record-id filter.
func ByIDs(ids ...string) *Filter {
	return &Filter{IDs: ids}
}

// ByFieldEquals builds a single field-equality filter.
func ByFieldEquals(field, value string) *Filter {
	return &Filter{Field: field, Equals: value}
}

// Formula renders the filter as a store formula. String values are
// backslash-quote-escaped; this is the only defense available since the
// store's query language has no parameterization.
func (f *Filter) Formula() string {
	if f == nil {
		return ""
	}
	if len(f.IDs) > 0 {
		predicates := make([]string, 0, len(f.IDs))
		for _, id := range f.IDs {
			predicates = append(predicates, fmt.Sprintf("RECORD_ID()='%s'", sanitize.EscapeFormula(id)))
		}
		if len(predicates) == 1 {
			return predicates[0]
		}
		return fmt.Sprintf("OR(%s)", strings.Join(predicates, ","))
	}
	if f.Field != "" {
		return fmt.Sprintf("%s = '%s'", f.Field, sanitize.EscapeFormula(f.Equals))
	}
	return ""
}

// Matches reports whether a record satisfies the filter.
func (f *Filter) Matches(record Record) bool {
	if f == nil {
		return true
	}
	if len(f.IDs) > 0 {
		for _, id := range f.IDs {
			if record.ID == id {
				return true
			}
		}
		return false
	}
	if f.Field != "" {
		value, ok := record.Fields[f.Field]
		if !ok {
			return false
		}
		asString, ok := value.(string)
		if !ok {
			return false
		}
		return asString == f.Equals
	}
	return true
}
