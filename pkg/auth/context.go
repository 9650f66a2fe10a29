package auth

import "context"

type subjectKey struct{}

// WithSubject stores the authenticated user id in ctx.
func WithSubject(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, subjectKey{}, userID)
}

// SubjectFromCtx returns the authenticated user id, or false when the
// request carried no valid token.
func SubjectFromCtx(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(subjectKey{}).(int64)
	return id, ok
}
