package user

import "context"

type ctxKey string

const contextUserKey ctxKey = "authenticated_user"

// NewContext stores the authenticated user in the request context.
func NewContext(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, contextUserKey, u)
}

// FromContext returns the authenticated user, if any.
func FromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(contextUserKey).(*User)
	return u, ok
}
