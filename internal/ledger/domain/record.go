package domain

import (
	"time"

	"github.com/google/uuid"
)

// Helpers turning optional fields into record values. A nil pointer becomes an untyped nil
// so drivers write NULL.

func nullUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}

func nullString[T ~string](s *T) any {
	if s == nil {
		return nil
	}
	return string(*s)
}

func nullInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}

func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return DateOf(*t)
}

func optionalOf[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// decodeErrors collects the first error of a sequence of record reads.
type decodeErrors struct {
	err error
}

func (d *decodeErrors) check(err error) {
	if d.err == nil && err != nil {
		d.err = err
	}
}

// read calls getter with key and records its error.
func read[T any](d *decodeErrors, getter func(string) (T, error), key string) T {
	v, err := getter(key)
	d.check(err)
	return v
}
