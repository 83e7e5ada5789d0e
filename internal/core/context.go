package core

import "context"

type contextKey string

const (
	ctxKeyUserID contextKey = "user_id"
	ctxKeyLang   contextKey = "lang"
)

// DefaultUserID owns tasks when a request names no user.
const DefaultUserID = "local"

// ContextWithUserID adds the acting user to context.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, userID)
}

// UserIDFromContext returns the acting user, or DefaultUserID if unset.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyUserID).(string); ok && v != "" {
		return v
	}
	return DefaultUserID
}

// ContextWithLanguage adds the negotiated message language to context.
func ContextWithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKeyLang, lang)
}

// LanguageFromContext returns the message language, or "en" if unset.
func LanguageFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyLang).(string); ok && v != "" {
		return v
	}
	return "en"
}
