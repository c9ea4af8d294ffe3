package domain

import "context"

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyRequestID CtxKey = "RequestID"
)

// Actor is the authenticated identity a request acts on behalf of.
// Usecases receive it explicitly and never look it up themselves.
type Actor struct {
	UserID int64
	Email  string
}

// RequestIDFrom returns the request id stored in ctx, if any
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)
	return id
}
