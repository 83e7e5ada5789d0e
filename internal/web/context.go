package web

import (
	"net"
	"net/http"
	"strings"

	"github.com/JonMunkholm/routine/internal/core"
)

// maxUserIDLength bounds the user header; longer values are ignored.
const maxUserIDLength = 128

// withRequestUser places the acting user and negotiated message language in
// the request context. The user comes from header (core.DefaultUserID when
// absent); the language from Accept-Language, else defaultLang.
func withRequestUser(header, defaultLang string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID := strings.TrimSpace(r.Header.Get(header))
			if userID == "" || len(userID) > maxUserIDLength {
				userID = core.DefaultUserID
			}
			ctx = core.ContextWithUserID(ctx, userID)

			lang := defaultLang
			if accept := r.Header.Get("Accept-Language"); accept != "" {
				lang = accept
			}
			ctx = core.ContextWithLanguage(ctx, core.MatchLanguage(lang))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requestUser returns the acting user for r.
func requestUser(r *http.Request) string {
	return core.UserIDFromContext(r.Context())
}

// requestLang returns the message language for r.
func requestLang(r *http.Request) string {
	return core.LanguageFromContext(r.Context())
}

// clientIP strips the port from a RemoteAddr.
func clientIP(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
