package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/finledger/internal/database"
	"github.com/allisson/finledger/internal/entity"
	apperrors "github.com/allisson/finledger/internal/errors"
	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
)

// ErrUnknownColumn indicates a record or query naming a column outside the table definition.
var ErrUnknownColumn = errors.New("unknown column")

// dialect captures the differences between the supported SQL databases.
type dialect interface {
	// placeholder returns the bind parameter for the n-th argument (1-based).
	placeholder(n int) string
}

// SQLStore persists ledger records in a relational database. Every call runs on the
// transaction carried by ctx when there is one.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	now     func() time.Time
}

func newSQLStore(db *sql.DB, d dialect) *SQLStore {
	return &SQLStore{
		db:      db,
		dialect: d,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Get loads one row by id.
func (s *SQLStore) Get(ctx context.Context, t entity.Type, id uuid.UUID) (entity.Record, error) {
	tbl, err := tableFor(t)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE id = %s",
		strings.Join(tbl.columns, ", "),
		tbl.name,
		s.dialect.placeholder(1),
	)

	rows, err := database.GetTx(ctx, s.db).QueryContext(ctx, query, id)
	if err != nil {
		return nil, apperrors.Wrap(err, fmt.Sprintf("failed to get %s", tbl.name))
	}
	records, err := scanRecords(rows, tbl.columns)
	if err != nil {
		return nil, apperrors.Wrap(err, fmt.Sprintf("failed to get %s", tbl.name))
	}
	if len(records) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return records[0], nil
}

// Query lists rows matching q.
func (s *SQLStore) Query(ctx context.Context, t entity.Type, q entity.Query) ([]entity.Record, error) {
	tbl, err := tableFor(t)
	if err != nil {
		return nil, err
	}

	var (
		sb   strings.Builder
		args []any
	)
	fmt.Fprintf(&sb, "SELECT %s FROM %s", strings.Join(tbl.columns, ", "), tbl.name)

	for i, f := range q.Filters {
		if !tbl.has(f.Column) {
			return nil, fmt.Errorf("%s.%s: %w", tbl.name, f.Column, ErrUnknownColumn)
		}
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		if f.Op == entity.OpIsNull {
			fmt.Fprintf(&sb, "%s IS NULL", f.Column)
			continue
		}
		args = append(args, f.Value)
		fmt.Fprintf(&sb, "%s %s %s", f.Column, f.Op, s.dialect.placeholder(len(args)))
	}

	if q.OrderBy != "" {
		if !tbl.has(q.OrderBy) {
			return nil, fmt.Errorf("%s.%s: %w", tbl.name, q.OrderBy, ErrUnknownColumn)
		}
		direction := "ASC"
		if q.Descending {
			direction = "DESC"
		}
		fmt.Fprintf(&sb, " ORDER BY %s %s, id %s", q.OrderBy, direction, direction)
	}
	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}

	rows, err := database.GetTx(ctx, s.db).QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, apperrors.Wrap(err, fmt.Sprintf("failed to query %s", tbl.name))
	}
	records, err := scanRecords(rows, tbl.columns)
	if err != nil {
		return nil, apperrors.Wrap(err, fmt.Sprintf("failed to query %s", tbl.name))
	}
	return records, nil
}

// Insert writes a new row. Columns missing from rec take their database default.
func (s *SQLStore) Insert(ctx context.Context, t entity.Type, rec entity.Record) error {
	tbl, err := tableFor(t)
	if err != nil {
		return err
	}
	cols, err := tbl.writable(rec, nil)
	if err != nil {
		return err
	}

	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		placeholders[i] = s.dialect.placeholder(i + 1)
		args[i] = rec[col]
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		tbl.name,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)

	if _, err := database.GetTx(ctx, s.db).ExecContext(ctx, query, args...); err != nil {
		return apperrors.Wrap(err, fmt.Sprintf("failed to insert %s", tbl.name))
	}
	return nil
}

// Update applies patch to the row with id and returns the stored row.
func (s *SQLStore) Update(
	ctx context.Context,
	t entity.Type,
	id uuid.UUID,
	patch entity.Record,
) (entity.Record, error) {
	tbl, err := tableFor(t)
	if err != nil {
		return nil, err
	}

	set, args, err := s.setClause(tbl, patch)
	if err != nil {
		return nil, err
	}
	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = %s",
		tbl.name,
		set,
		s.dialect.placeholder(len(args)),
	)

	if _, err := database.GetTx(ctx, s.db).ExecContext(ctx, query, args...); err != nil {
		return nil, apperrors.Wrap(err, fmt.Sprintf("failed to update %s", tbl.name))
	}

	// MySQL reports zero affected rows for no-op updates, so existence is checked by reading back.
	return s.Get(ctx, t, id)
}

// UpdateVersioned applies patch only when the row still has expectedVersion, bumping the
// version. It returns ErrVersionConflict when another writer got there first.
func (s *SQLStore) UpdateVersioned(
	ctx context.Context,
	t entity.Type,
	id uuid.UUID,
	expectedVersion int64,
	patch entity.Record,
) (entity.Record, error) {
	tbl, err := tableFor(t)
	if err != nil {
		return nil, err
	}
	if !tbl.versioned {
		return nil, fmt.Errorf("%s is not versioned: %w", tbl.name, ErrUnknownColumn)
	}

	set, args, err := s.setClause(tbl, patch)
	if err != nil {
		return nil, err
	}
	args = append(args, id, expectedVersion)
	query := fmt.Sprintf(
		"UPDATE %s SET %s, version = version + 1 WHERE id = %s AND version = %s",
		tbl.name,
		set,
		s.dialect.placeholder(len(args)-1),
		s.dialect.placeholder(len(args)),
	)

	result, err := database.GetTx(ctx, s.db).ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, fmt.Sprintf("failed to update %s", tbl.name))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.Wrap(err, fmt.Sprintf("failed to update %s", tbl.name))
	}
	if affected == 0 {
		if _, err := s.Get(ctx, t, id); err != nil {
			return nil, err
		}
		return nil, ledgerDomain.ErrVersionConflict
	}
	return s.Get(ctx, t, id)
}

// Delete removes the row with id.
func (s *SQLStore) Delete(ctx context.Context, t entity.Type, id uuid.UUID) error {
	tbl, err := tableFor(t)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE id = %s", tbl.name, s.dialect.placeholder(1))
	result, err := database.GetTx(ctx, s.db).ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, fmt.Sprintf("failed to delete %s", tbl.name))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, fmt.Sprintf("failed to delete %s", tbl.name))
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Ping checks database connectivity.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) setClause(tbl table, patch entity.Record) (string, []any, error) {
	patch = patch.Clone()
	if patch == nil {
		patch = entity.Record{}
	}
	if tbl.has("updated_at") && !patch.Has("updated_at") {
		patch["updated_at"] = s.now()
	}

	cols, err := tbl.writable(patch, immutableColumns)
	if err != nil {
		return "", nil, err
	}

	assignments := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		assignments[i] = fmt.Sprintf("%s = %s", col, s.dialect.placeholder(i+1))
		args[i] = patch[col]
	}
	return strings.Join(assignments, ", "), args, nil
}

func scanRecords(rows *sql.Rows, columns []string) (records []entity.Record, err error) {
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		rec := make(entity.Record, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				rec[col] = string(b)
				continue
			}
			rec[col] = values[i]
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
