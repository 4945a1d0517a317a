package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const userNameKey contextKey = "user_name"

func SetUserName(ctx context.Context, userName string) context.Context {
	return context.WithValue(ctx, userNameKey, userName)
}

func GetUserName(r *http.Request) string {
	v, _ := r.Context().Value(userNameKey).(string)
	return v
}
