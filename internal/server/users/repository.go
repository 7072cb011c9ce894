package users

import (
	"context"
)

// Repository stores users. Lookups by email and username are
// case-insensitive; missing users yield common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Exists(ctx context.Context, username, email string) (usernameTaken, emailTaken bool, err error)
	Update(ctx context.Context, user *User) error
	DeleteByEmail(ctx context.Context, email string) error
}
