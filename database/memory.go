package database

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/student-showcase-backend/errs"
)

// MemoryStore is an in-process Store used by tests. It keeps records in
// insertion order per table and can emulate the hosted store's
// created-time fields, which the real store computes server-side.
type MemoryStore struct {
	mu                sync.Mutex
	tables            map[string][]Record
	createdTimeFields map[string]string
	forcedErr         error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables:            make(map[string][]Record),
		createdTimeFields: make(map[string]string),
	}
}

// SetCreatedTimeField makes Insert stamp the named field with the
// insertion time for records of the given table.
func (m *MemoryStore) SetCreatedTimeField(table, field string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createdTimeFields[table] = field
}

// FailWith makes every subsequent operation return err; nil clears it.
func (m *MemoryStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forcedErr = err
}

func (m *MemoryStore) Insert(_ context.Context, table string, fields map[string]any) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return Record{}, m.forcedErr
	}

	copied := make(map[string]any, len(fields)+1)
	for key, value := range fields {
		copied[key] = value
	}
	if field, ok := m.createdTimeFields[table]; ok {
		if _, present := copied[field]; !present {
			copied[field] = time.Now().UTC().Format(time.RFC3339)
		}
	}

	record := Record{ID: newRecordID(), Fields: copied}
	m.tables[table] = append(m.tables[table], record)
	return record, nil
}

func (m *MemoryStore) ListAll(_ context.Context, table string, filter *Filter) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}

	var matched []Record
	for _, record := range m.tables[table] {
		if filter.Matches(record) {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

func (m *MemoryStore) PatchByID(_ context.Context, table string, patches []RecordPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return m.forcedErr
	}

	records := m.tables[table]
	for _, patch := range patches {
		found := false
		for i := range records {
			if records[i].ID == patch.ID {
				for key, value := range patch.Fields {
					records[i].Fields[key] = value
				}
				found = true
				break
			}
		}
		if !found {
			return errs.NewUpstreamError("update record", table, "NOT_FOUND",
				fmt.Sprintf("record %s does not exist", patch.ID), nil)
		}
	}
	return nil
}

func (m *MemoryStore) DeleteByIDs(_ context.Context, table string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErr != nil {
		return m.forcedErr
	}

	records := m.tables[table]
	for _, id := range ids {
		found := false
		for i := range records {
			if records[i].ID == id {
				records = append(records[:i], records[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return errs.NewUpstreamError("delete record", table, "NOT_FOUND",
				fmt.Sprintf("record %s does not exist", id), nil)
		}
	}
	m.tables[table] = records
	return nil
}

// Get returns a record by id for test assertions.
func (m *MemoryStore) Get(table, id string) (Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, record := range m.tables[table] {
		if record.ID == id {
			return record, true
		}
	}
	return Record{}, false
}

// Count returns the number of records in a table.
func (m *MemoryStore) Count(table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tables[table])
}

// newRecordID mints ids shaped like the hosted store's: "rec" followed by
// an opaque alphanumeric suffix.
func newRecordID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "rec" + suffix[:14]
}
