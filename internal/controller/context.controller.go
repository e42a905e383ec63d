package controller

import "context"

type contextKey int

const (
	sessionIDCtxKey contextKey = iota
	requestIDCtxKey
)

func (c *Controller) getSessionIDFromCtx(ctx context.Context) string {
	sessionID, _ := ctx.Value(sessionIDCtxKey).(string)
	return sessionID
}
