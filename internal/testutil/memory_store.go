package testutil

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/finledger/internal/entity"
	apperrors "github.com/allisson/finledger/internal/errors"
	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
)

// MemoryStore is an in-memory record store for use case tests. It keeps values as inserted
// and reproduces the versioning and not-found behavior of the SQL store.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[entity.Type]map[uuid.UUID]entity.Record
	fail   map[string]error

	// BeforeVersionedUpdate runs before each versioned update, outside the store lock, and
	// can mutate the store to simulate a concurrent writer.
	BeforeVersionedUpdate func(t entity.Type, id uuid.UUID)
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[entity.Type]map[uuid.UUID]entity.Record),
		fail:   make(map[string]error),
	}
}

// FailOn makes every call of op ("get", "query", "insert", "update", "update_versioned",
// "delete") on entity type t return err. A nil err clears the failure.
func (s *MemoryStore) FailOn(op string, t entity.Type, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := op + ":" + t.Tag()
	if err == nil {
		delete(s.fail, key)
		return
	}
	s.fail[key] = err
}

// Rows returns a copy of every stored row of type t.
func (s *MemoryStore) Rows(t entity.Type) []entity.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]entity.Record, 0, len(s.tables[t]))
	for _, rec := range s.tables[t] {
		rows = append(rows, rec.Clone())
	}
	return rows
}

// Put stores rec as is, replacing any row with the same id.
func (s *MemoryStore) Put(t entity.Type, rec entity.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := rec.UUID("id")
	if err != nil {
		panic(fmt.Sprintf("testutil: record without id: %v", err))
	}
	s.table(t)[id] = rec.Clone()
}

// Get loads one row by id.
func (s *MemoryStore) Get(_ context.Context, t entity.Type, id uuid.UUID) (entity.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("get", t); err != nil {
		return nil, err
	}
	rec, ok := s.table(t)[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return rec.Clone(), nil
}

// Query lists rows matching q.
func (s *MemoryStore) Query(_ context.Context, t entity.Type, q entity.Query) ([]entity.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("query", t); err != nil {
		return nil, err
	}

	var rows []entity.Record
	for _, rec := range s.table(t) {
		if matches(rec, q.Filters) {
			rows = append(rows, rec.Clone())
		}
	}

	slices.SortFunc(rows, func(a, b entity.Record) int {
		if q.OrderBy != "" {
			c, _ := compare(a[q.OrderBy], b[q.OrderBy])
			if q.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		c, _ := compare(a["id"], b["id"])
		return c
	})

	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	return rows, nil
}

// Insert stores a new row.
func (s *MemoryStore) Insert(_ context.Context, t entity.Type, rec entity.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("insert", t); err != nil {
		return err
	}
	id, err := rec.UUID("id")
	if err != nil {
		return err
	}
	if _, exists := s.table(t)[id]; exists {
		return apperrors.Wrap(apperrors.ErrConflict, fmt.Sprintf("duplicate %s id %s", t, id))
	}
	s.table(t)[id] = rec.Clone()
	return nil
}

// Update merges patch into the row with id.
func (s *MemoryStore) Update(
	_ context.Context,
	t entity.Type,
	id uuid.UUID,
	patch entity.Record,
) (entity.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("update", t); err != nil {
		return nil, err
	}
	rec, ok := s.table(t)[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	s.merge(rec, patch)
	return rec.Clone(), nil
}

// UpdateVersioned merges patch when the row still has expectedVersion.
func (s *MemoryStore) UpdateVersioned(
	_ context.Context,
	t entity.Type,
	id uuid.UUID,
	expectedVersion int64,
	patch entity.Record,
) (entity.Record, error) {
	if hook := s.BeforeVersionedUpdate; hook != nil {
		hook(t, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("update_versioned", t); err != nil {
		return nil, err
	}
	rec, ok := s.table(t)[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	version, err := rec.Int64("version")
	if err != nil {
		return nil, err
	}
	if version != expectedVersion {
		return nil, ledgerDomain.ErrVersionConflict
	}
	s.merge(rec, patch)
	rec["version"] = version + 1
	return rec.Clone(), nil
}

// Delete removes the row with id.
func (s *MemoryStore) Delete(_ context.Context, t entity.Type, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("delete", t); err != nil {
		return err
	}
	if _, ok := s.table(t)[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.table(t), id)
	return nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

// TxManager returns a transaction manager that restores the store contents when the
// outermost unit of work fails.
func (s *MemoryStore) TxManager() *MemoryTxManager {
	return &MemoryTxManager{store: s}
}

func (s *MemoryStore) table(t entity.Type) map[uuid.UUID]entity.Record {
	tbl, ok := s.tables[t]
	if !ok {
		tbl = make(map[uuid.UUID]entity.Record)
		s.tables[t] = tbl
	}
	return tbl
}

func (s *MemoryStore) failure(op string, t entity.Type) error {
	return s.fail[op+":"+t.Tag()]
}

func (s *MemoryStore) merge(rec, patch entity.Record) {
	for k, v := range patch {
		if k == "id" || k == "user_id" || k == "created_at" || k == "version" {
			continue
		}
		rec[k] = v
	}
	if !patch.Has("updated_at") {
		rec["updated_at"] = time.Now().UTC()
	}
}

func (s *MemoryStore) snapshot() map[entity.Type]map[uuid.UUID]entity.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make(map[entity.Type]map[uuid.UUID]entity.Record, len(s.tables))
	for t, tbl := range s.tables {
		rows := make(map[uuid.UUID]entity.Record, len(tbl))
		for id, rec := range tbl {
			rows[id] = maps.Clone(rec)
		}
		snap[t] = rows
	}
	return snap
}

func (s *MemoryStore) restore(snap map[entity.Type]map[uuid.UUID]entity.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = snap
}

type memoryTxKey struct{}

// MemoryTxManager gives MemoryStore all-or-nothing units of work. Nested calls join the
// outer unit.
type MemoryTxManager struct {
	store *MemoryStore

	// Calls counts outermost units of work.
	Calls int
}

// WithTx runs fn and rolls the store back when it fails.
func (m *MemoryTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memoryTxKey{}) != nil {
		return fn(ctx)
	}

	m.Calls++
	snap := m.store.snapshot()
	if err := fn(context.WithValue(ctx, memoryTxKey{}, true)); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

func matches(rec entity.Record, filters []entity.Filter) bool {
	for _, f := range filters {
		v := rec[f.Column]
		if f.Op == entity.OpIsNull {
			if v != nil {
				return false
			}
			continue
		}
		if v == nil || f.Value == nil {
			return false
		}
		c, ok := compare(v, f.Value)
		if !ok {
			return false
		}
		var pass bool
		switch f.Op {
		case entity.OpEq:
			pass = c == 0
		case entity.OpNotEq:
			pass = c != 0
		case entity.OpGt:
			pass = c > 0
		case entity.OpGte:
			pass = c >= 0
		case entity.OpLt:
			pass = c < 0
		case entity.OpLte:
			pass = c <= 0
		}
		if !pass {
			return false
		}
	}
	return true
}

// compare orders two stored or filter values of compatible kinds.
func compare(a, b any) (int, bool) {
	a, b = normalize(a), normalize(b)
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y), true
		}
	case int64:
		if y, ok := b.(int64); ok {
			return cmp.Compare(x, y), true
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0, true
			case !x:
				return -1, true
			default:
				return 1, true
			}
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y), true
		}
	}
	return 0, false
}

func normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case uuid.UUID:
		return x.String()
	case *uuid.UUID:
		if x == nil {
			return nil
		}
		return x.String()
	case []byte:
		return string(x)
	case time.Time:
		return x
	case bool:
		return x
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	default:
		return v
	}
}
