package users

import "context"

// Repo stores accounts. Emails are compared case-insensitively; Create
// returns ErrEmailTaken for duplicates.
type Repo interface {
	Create(ctx context.Context, account Account) error
	GetByID(ctx context.Context, userID string) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
}
