package usecase

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/finledger/internal/entity"
)

// recordStore pairs the store with the field cipher so use cases only see plaintext.
type recordStore struct {
	store       Store
	cipher      FieldCipher
	concurrency int
}

func newRecordStore(store Store, cipher FieldCipher, concurrency int) *recordStore {
	if concurrency < 1 {
		concurrency = 1
	}
	return &recordStore{store: store, cipher: cipher, concurrency: concurrency}
}

func (r *recordStore) get(ctx context.Context, t entity.Type, id uuid.UUID) (entity.Record, error) {
	rec, err := r.store.Get(ctx, t, id)
	if err != nil {
		return nil, err
	}
	return r.cipher.DecryptFields(ctx, t, rec)
}

// query decrypts the matching rows in parallel, bounded by the configured concurrency.
func (r *recordStore) query(ctx context.Context, t entity.Type, q entity.Query) ([]entity.Record, error) {
	rows, err := r.store.Query(ctx, t, q)
	if err != nil {
		return nil, err
	}

	out := make([]entity.Record, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, row := range rows {
		g.Go(func() error {
			rec, err := r.cipher.DecryptFields(gctx, t, row)
			if err != nil {
				return err
			}
			out[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// insert encrypts and stores rec, then returns the stored row decrypted.
func (r *recordStore) insert(ctx context.Context, t entity.Type, rec entity.Record) (entity.Record, error) {
	sealed, err := r.cipher.EncryptFields(ctx, t, rec)
	if err != nil {
		return nil, err
	}
	id, err := rec.UUID("id")
	if err != nil {
		return nil, err
	}
	if err := r.store.Insert(ctx, t, sealed); err != nil {
		return nil, err
	}
	return r.get(ctx, t, id)
}

func (r *recordStore) update(
	ctx context.Context,
	t entity.Type,
	id uuid.UUID,
	patch entity.Record,
) (entity.Record, error) {
	sealed, err := r.cipher.EncryptFields(ctx, t, patch)
	if err != nil {
		return nil, err
	}
	stored, err := r.store.Update(ctx, t, id, sealed)
	if err != nil {
		return nil, err
	}
	return r.cipher.DecryptFields(ctx, t, stored)
}

func (r *recordStore) updateVersioned(
	ctx context.Context,
	t entity.Type,
	id uuid.UUID,
	expectedVersion int64,
	patch entity.Record,
) (entity.Record, error) {
	sealed, err := r.cipher.EncryptFields(ctx, t, patch)
	if err != nil {
		return nil, err
	}
	stored, err := r.store.UpdateVersioned(ctx, t, id, expectedVersion, sealed)
	if err != nil {
		return nil, err
	}
	return r.cipher.DecryptFields(ctx, t, stored)
}

func (r *recordStore) delete(ctx context.Context, t entity.Type, id uuid.UUID) error {
	return r.store.Delete(ctx, t, id)
}

// decodeAll converts decrypted records with decode.
func decodeAll[T any](records []entity.Record, decode func(entity.Record) (*T, error)) ([]*T, error) {
	out := make([]*T, 0, len(records))
	for _, rec := range records {
		v, err := decode(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// mutableFields drops the columns an update never rewrites.
func mutableFields(rec entity.Record) entity.Record {
	patch := rec.Clone()
	for _, col := range []string{"id", "user_id", "created_at", "version"} {
		delete(patch, col)
	}
	return patch
}
