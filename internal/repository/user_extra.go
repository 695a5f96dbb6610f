package repository

import (
	"context"

	"userextra/internal/model"
)

// UserExtraRepository defines data access for user extras using SQL queries only.
// No business logic here: validation of ids and ownership lives in the service layer.
type UserExtraRepository interface {
	// Create inserts a new row and returns it with the database-assigned ID.
	Create(ctx context.Context, e *model.UserExtra) (*model.UserExtra, error)

	// Update overwrites every column of the row identified by e.ID.
	Update(ctx context.Context, e *model.UserExtra) (*model.UserExtra, error)

	// FindByID returns a row by its ID or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*model.UserExtra, error)

	// FindByUserID returns the row owned by the given user or ErrNotFound.
	FindByUserID(ctx context.Context, userID int64) (*model.UserExtra, error)

	// ExistsByID reports whether a row with the ID exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// List returns rows ordered by ID. A zero Limit returns every row.
	List(ctx context.Context, pq PageQuery) ([]model.UserExtra, error)

	// Delete removes a row by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id int64) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}
