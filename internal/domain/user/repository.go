package user

import "context"

type Repository interface {
	// Provision inserts the subject if absent, making it admin only when no
	// user exists yet, and refreshes email and name otherwise. The check and
	// insert are serialized. The bool reports whether a row was created.
	Provision(ctx context.Context, principal Principal) (User, bool, error)
	GetBySubject(ctx context.Context, subject string) (User, bool, error)
	Get(ctx context.Context, id int64) (User, bool, error)
	List(ctx context.Context) ([]User, error)
}
