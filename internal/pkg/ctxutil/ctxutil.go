package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type requestDataKey struct{}

// RequestData carries per-request identity resolved by middleware. UserID is
// uuid.Nil for anonymous visitors; SessionID keys the wizard and quiz stores.
type RequestData struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	rd, _ := ctx.Value(requestDataKey{}).(*RequestData)
	return rd
}

// Authenticated reports whether the context carries a logged-in user.
func Authenticated(ctx context.Context) bool {
	rd := GetRequestData(ctx)
	return rd != nil && rd.UserID != uuid.Nil
}
