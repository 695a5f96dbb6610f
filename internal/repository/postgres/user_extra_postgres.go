package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"userextra/internal/model"
	"userextra/internal/repository"
)

// UserExtraPostgres is a PostgreSQL implementation of repository.UserExtraRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type UserExtraPostgres struct {
	db *sql.DB
}

// NewUserExtraPostgres creates a new UserExtraPostgres repository.
func NewUserExtraPostgres(db *sql.DB) *UserExtraPostgres {
	return &UserExtraPostgres{db: db}
}

var _ repository.UserExtraRepository = (*UserExtraPostgres)(nil)

const selectColumns = `SELECT id, front_image, back_image, user_id FROM user_extra`

const uniqueViolation = "23505"

// translate maps driver errors the service layer acts on to repository sentinels.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", repository.ErrConflict, pgErr.ConstraintName)
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserExtra(row rowScanner) (*model.UserExtra, error) {
	var (
		id     int64
		front  sql.NullString
		back   sql.NullString
		userID sql.NullInt64
	)
	if err := row.Scan(&id, &front, &back, &userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, translate(err)
	}

	out := &model.UserExtra{ID: &id}
	if front.Valid {
		out.FrontImage = &front.String
	}
	if back.Valid {
		out.BackImage = &back.String
	}
	if userID.Valid {
		out.User = &model.UserRef{ID: userID.Int64}
	}
	return out, nil
}

func nullableUserID(e *model.UserExtra) sql.NullInt64 {
	if e.User == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: e.User.ID, Valid: true}
}

// Create inserts a new row and returns the stored record.
func (r *UserExtraPostgres) Create(ctx context.Context, e *model.UserExtra) (*model.UserExtra, error) {
	const q = `
		INSERT INTO user_extra (front_image, back_image, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, front_image, back_image, user_id
	`
	row := r.db.QueryRowContext(ctx, q, e.FrontImage, e.BackImage, nullableUserID(e))
	return scanUserExtra(row)
}

// Update overwrites the row and returns it; ErrNotFound when the ID is unknown.
func (r *UserExtraPostgres) Update(ctx context.Context, e *model.UserExtra) (*model.UserExtra, error) {
	if e.ID == nil {
		return nil, repository.ErrNotFound
	}
	const q = `
		UPDATE user_extra
		SET front_image = $2, back_image = $3, user_id = $4
		WHERE id = $1
		RETURNING id, front_image, back_image, user_id
	`
	row := r.db.QueryRowContext(ctx, q, *e.ID, e.FrontImage, e.BackImage, nullableUserID(e))
	return scanUserExtra(row)
}

// FindByID fetches a single row by its ID.
func (r *UserExtraPostgres) FindByID(ctx context.Context, id int64) (*model.UserExtra, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id)
	return scanUserExtra(row)
}

// FindByUserID fetches the row owned by a user.
func (r *UserExtraPostgres) FindByUserID(ctx context.Context, userID int64) (*model.UserExtra, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE user_id = $1`, userID)
	return scanUserExtra(row)
}

// ExistsByID reports whether a row exists.
func (r *UserExtraPostgres) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM user_extra WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// List returns rows ordered by ID, optionally paged with LIMIT/OFFSET.
func (r *UserExtraPostgres) List(ctx context.Context, pq repository.PageQuery) ([]model.UserExtra, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if pq.Limit > 0 {
		rows, err = r.db.QueryContext(ctx, selectColumns+` ORDER BY id ASC LIMIT $1 OFFSET $2`, pq.Limit, pq.Offset)
	} else {
		rows, err = r.db.QueryContext(ctx, selectColumns+` ORDER BY id ASC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.UserExtra, 0)
	for rows.Next() {
		e, err := scanUserExtra(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a row by ID. It does not return an error if the row does not exist.
func (r *UserExtraPostgres) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_extra WHERE id = $1`, id)
	return err
}
