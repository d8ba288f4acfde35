package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType(t *testing.T) {
	t.Run("every type round-trips through its tag", func(t *testing.T) {
		for _, typ := range All() {
			parsed, err := ParseType(typ.Tag())
			require.NoError(t, err)
			assert.Equal(t, typ, parsed)
			assert.True(t, typ.Valid())
		}
		assert.Len(t, All(), 10)
	})

	t.Run("unknown tag is rejected", func(t *testing.T) {
		_, err := ParseType("transaction")
		assert.Error(t, err)
	})

	t.Run("undeclared value", func(t *testing.T) {
		assert.False(t, Type(99).Valid())
		assert.Equal(t, "entity(99)", Type(99).Tag())
	})
}

func TestRecordAccessors(t *testing.T) {
	id := uuid.Must(uuid.NewV7())
	due := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	rec := Record{
		"id":          id.String(),
		"owner":       id,
		"description": []byte("groceries"),
		"amount":      "12.50",
		"version":     int64(3),
		"installment": 2,
		"is_active":   int64(1),
		"due_date":    due,
		"paid_date":   "2026-03-10",
		"notes":       nil,
	}

	t.Run("uuid from string and typed value", func(t *testing.T) {
		got, err := rec.UUID("id")
		require.NoError(t, err)
		assert.Equal(t, id, got)

		got, err = rec.UUID("owner")
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("optional values", func(t *testing.T) {
		notes, err := rec.OptionalText("notes")
		require.NoError(t, err)
		assert.Nil(t, notes)

		parent, err := rec.OptionalUUID("parent_transaction_id")
		require.NoError(t, err)
		assert.Nil(t, parent)

		n, err := rec.OptionalInt("installment")
		require.NoError(t, err)
		require.NotNil(t, n)
		assert.Equal(t, 2, *n)
	})

	t.Run("text from bytes", func(t *testing.T) {
		s, err := rec.Text("description")
		require.NoError(t, err)
		assert.Equal(t, "groceries", s)
	})

	t.Run("decimal from string", func(t *testing.T) {
		d, err := rec.Decimal("amount")
		require.NoError(t, err)
		assert.True(t, d.Equal(decimal.RequireFromString("12.5")))
	})

	t.Run("integers and booleans", func(t *testing.T) {
		v, err := rec.Int64("version")
		require.NoError(t, err)
		assert.Equal(t, int64(3), v)

		active, err := rec.Bool("is_active")
		require.NoError(t, err)
		assert.True(t, active)

		missing, err := rec.Bool("nope")
		require.NoError(t, err)
		assert.False(t, missing)
	})

	t.Run("times from values and strings", func(t *testing.T) {
		got, err := rec.Time("due_date")
		require.NoError(t, err)
		assert.Equal(t, due, got)

		paid, err := rec.OptionalTime("paid_date")
		require.NoError(t, err)
		require.NotNil(t, paid)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *paid)
	})

	t.Run("missing required field", func(t *testing.T) {
		_, err := rec.Decimal("balance")
		assert.ErrorIs(t, err, ErrFieldType)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := Record{"version": true}.Int64("version")
		assert.ErrorIs(t, err, ErrFieldType)
	})

	t.Run("clone is independent", func(t *testing.T) {
		clone := rec.Clone()
		clone["amount"] = "99"
		assert.Equal(t, "12.50", rec["amount"])
	})
}

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"decimal", decimal.RequireFromString("1.10"), "1.1"},
		{"string", " 42.05 ", "42.05"},
		{"float", 0.1, "0.1"},
		{"int", 7, "7"},
		{"int64", int64(-3), "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToDecimal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	t.Run("not numeric", func(t *testing.T) {
		_, err := ToDecimal(true)
		assert.ErrorIs(t, err, ErrFieldType)

		_, err = ToDecimal("abc")
		assert.Error(t, err)
	})
}

func TestQueryBuilders(t *testing.T) {
	q := Where(Eq("user_id", "u"), Gte("due_date", "2026-03-01"), IsNull("parent_transaction_id")).
		Order("due_date", true)

	require.Len(t, q.Filters, 3)
	assert.Equal(t, OpEq, q.Filters[0].Op)
	assert.Equal(t, OpGte, q.Filters[1].Op)
	assert.Equal(t, OpIsNull, q.Filters[2].Op)
	assert.Equal(t, "due_date", q.OrderBy)
	assert.True(t, q.Descending)
}
