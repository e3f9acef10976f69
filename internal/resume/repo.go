package resume

import "context"

// Repo is the resume store gateway. Every method returns ErrNotFound when the
// account does not exist. A known account without stored content reads as an
// empty record.
type Repo interface {
	Get(ctx context.Context, userID string) (Record, error)
	Put(ctx context.Context, userID string, content Content) error
	Delete(ctx context.Context, userID string) error
}

// Accounts resolves the identity half of a record.
type Accounts interface {
	Identity(ctx context.Context, userID string) (Identity, error)
}
