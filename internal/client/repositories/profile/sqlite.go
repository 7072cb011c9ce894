package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/somapoll/internal/client/models"
	"github.com/dmitrijs2005/somapoll/internal/dbx"
)

const profileColumns = `user_id, username, email, full_name, profile_picture, bio, privacy_settings,
	structure, facebook, instagram, x_twitter, threads, youtube, linkedin, tiktok, created_at, updated_at`

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (*models.Profile, error) {
	var (
		id   sql.NullInt64
		p    models.Profile
		cols [14]sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profile WHERE slot = 1`).Scan(
		&id, &p.Username, &p.Email,
		&cols[0], &cols[1], &cols[2], &cols[3], &cols[4], &cols[5], &cols[6],
		&cols[7], &cols[8], &cols[9], &cols[10], &cols[11], &cols[12], &cols[13],
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if id.Valid {
		v := id.Int64
		p.ID = &v
	}
	targets := optionalFields(&p)
	for i, t := range targets {
		if cols[i].Valid {
			v := cols[i].String
			*t = &v
		}
	}
	return &p, nil
}

// Replace deletes the stored profile and inserts p in one transaction.
func (r *SQLiteRepository) Replace(ctx context.Context, p *models.Profile) error {
	if p == nil {
		return r.Clear(ctx)
	}

	args := []any{nullInt(p.ID), p.Username, p.Email}
	for _, f := range optionalFields(p) {
		args = append(args, nullString(*f))
	}

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM profile`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO profile (slot, `+profileColumns+`)
			VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to replace profile: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM profile`); err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}
	return nil
}

// optionalFields lists the nullable string fields in column order,
// starting at full_name.
func optionalFields(p *models.Profile) []**string {
	return []**string{
		&p.FullName, &p.ProfilePicture, &p.Bio, &p.PrivacySettings, &p.Structure,
		&p.Facebook, &p.Instagram, &p.XTwitter, &p.Threads, &p.YouTube, &p.LinkedIn, &p.TikTok,
		&p.CreatedAt, &p.UpdatedAt,
	}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
