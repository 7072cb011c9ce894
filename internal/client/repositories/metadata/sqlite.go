package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/somapoll/internal/dbx"
)

const (
	selectSlot = `SELECT value FROM metadata WHERE key = ?`
	upsertSlot = `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	deleteSlot  = `DELETE FROM metadata WHERE key = ?`
	deleteSlots = `DELETE FROM metadata`
)

// SQLiteRepository stores slots in the metadata table created by the
// 00001 migration.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	switch err := r.db.QueryRowContext(ctx, selectSlot, key).Scan(&value); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, false, nil
	case err != nil:
		return nil, false, slotErr("get", key, err)
	}
	return value, true, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	if _, err := r.db.ExecContext(ctx, upsertSlot, key, value); err != nil {
		return slotErr("set", key, err)
	}
	return nil
}

// Delete removes one slot; deleting an absent slot succeeds.
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, deleteSlot, key); err != nil {
		return slotErr("delete", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deleteSlots); err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return nil
}

func slotErr(op, key string, err error) error {
	return fmt.Errorf("failed to %s metadata[%s]: %w", op, key, err)
}
