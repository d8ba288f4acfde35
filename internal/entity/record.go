package entity

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrFieldType is returned when a record value cannot be read as the requested type.
var ErrFieldType = errors.New("unexpected field type")

// DateLayout is the wire and storage layout of calendar dates.
const DateLayout = "2006-01-02"

// Record is one persisted row keyed by column name. Values coming back from storage are
// driver values (string, int64, bool, time.Time, nil); values built by use cases may carry
// richer types (uuid.UUID, decimal.Decimal). The accessors below accept both.
type Record map[string]any

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// Has reports whether key is present with a non-nil value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

func (r Record) required(key string) (any, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("field %q is missing: %w", key, ErrFieldType)
	}
	return v, nil
}

// UUID reads a required identifier.
func (r Record) UUID(key string) (uuid.UUID, error) {
	v, err := r.required(key)
	if err != nil {
		return uuid.Nil, err
	}
	return toUUID(key, v)
}

// OptionalUUID reads a nullable identifier.
func (r Record) OptionalUUID(key string) (*uuid.UUID, error) {
	if !r.Has(key) {
		return nil, nil
	}
	id, err := toUUID(key, r[key])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Text reads a required string.
func (r Record) Text(key string) (string, error) {
	v, err := r.required(key)
	if err != nil {
		return "", err
	}
	return toText(key, v)
}

// OptionalText reads a nullable string.
func (r Record) OptionalText(key string) (*string, error) {
	if !r.Has(key) {
		return nil, nil
	}
	s, err := toText(key, r[key])
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Decimal reads a required decimal.
func (r Record) Decimal(key string) (decimal.Decimal, error) {
	v, err := r.required(key)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := ToDecimal(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("field %q: %w", key, err)
	}
	return d, nil
}

// Int reads a required integer.
func (r Record) Int(key string) (int, error) {
	n, err := r.Int64(key)
	return int(n), err
}

// OptionalInt reads a nullable integer.
func (r Record) OptionalInt(key string) (*int, error) {
	if !r.Has(key) {
		return nil, nil
	}
	n, err := r.Int(key)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Int64 reads a required 64-bit integer.
func (r Record) Int64(key string) (int64, error) {
	v, err := r.required(key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		return parseInt(key, n)
	case []byte:
		return parseInt(key, string(n))
	default:
		return 0, fmt.Errorf("field %q has type %T: %w", key, v, ErrFieldType)
	}
}

// Bool reads a boolean, treating a missing value as false.
func (r Record) Bool(key string) (bool, error) {
	if !r.Has(key) {
		return false, nil
	}
	switch b := r[key].(type) {
	case bool:
		return b, nil
	case int64:
		return b != 0, nil
	case int:
		return b != 0, nil
	case string:
		return strconv.ParseBool(b)
	case []byte:
		return strconv.ParseBool(string(b))
	default:
		return false, fmt.Errorf("field %q has type %T: %w", key, b, ErrFieldType)
	}
}

// Time reads a required date or timestamp.
func (r Record) Time(key string) (time.Time, error) {
	v, err := r.required(key)
	if err != nil {
		return time.Time{}, err
	}
	return toTime(key, v)
}

// OptionalTime reads a nullable date or timestamp.
func (r Record) OptionalTime(key string) (*time.Time, error) {
	if !r.Has(key) {
		return nil, nil
	}
	t, err := toTime(key, r[key])
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ToDecimal converts a numeric value or numeric string into a decimal.
func ToDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero, fmt.Errorf("nil decimal: %w", ErrFieldType)
		}
		return *n, nil
	case string:
		return decimal.NewFromString(strings.TrimSpace(n))
	case []byte:
		return decimal.NewFromString(strings.TrimSpace(string(n)))
	case float64:
		return decimal.NewFromFloat(n), nil
	case float32:
		return decimal.NewFromFloat32(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int32:
		return decimal.NewFromInt32(n), nil
	case int64:
		return decimal.NewFromInt(n), nil
	default:
		return decimal.Zero, fmt.Errorf("value of type %T is not numeric: %w", v, ErrFieldType)
	}
}

func toUUID(key string, v any) (uuid.UUID, error) {
	switch id := v.(type) {
	case uuid.UUID:
		return id, nil
	case *uuid.UUID:
		if id == nil {
			return uuid.Nil, fmt.Errorf("field %q is nil: %w", key, ErrFieldType)
		}
		return *id, nil
	case string:
		return uuid.Parse(id)
	case []byte:
		return uuid.ParseBytes(id)
	default:
		return uuid.Nil, fmt.Errorf("field %q has type %T: %w", key, v, ErrFieldType)
	}
}

func toText(key string, v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	case fmt.Stringer:
		return s.String(), nil
	default:
		return "", fmt.Errorf("field %q has type %T: %w", key, v, ErrFieldType)
	}
}

func toTime(key string, v any) (time.Time, error) {
	var raw string
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case *time.Time:
		if t == nil {
			return time.Time{}, fmt.Errorf("field %q is nil: %w", key, ErrFieldType)
		}
		return *t, nil
	case string:
		raw = t
	case []byte:
		raw = string(t)
	default:
		return time.Time{}, fmt.Errorf("field %q has type %T: %w", key, v, ErrFieldType)
	}

	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", DateLayout} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("field %q: invalid time %q: %w", key, raw, ErrFieldType)
}

func parseInt(key, raw string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, ErrFieldType)
	}
	return n, nil
}
