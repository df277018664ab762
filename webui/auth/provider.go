package auth

import "net/http"

// These methods round out AuthMiddleware so it satisfies the dashboard
// server's AuthProvider interface without the server importing this
// package.

// MiddlewareFunc wraps an http.HandlerFunc with session authentication.
func (m *AuthMiddleware) MiddlewareFunc(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(next)
}

// LoginHandler returns the login page handler bound to this middleware.
func (m *AuthMiddleware) LoginHandler() http.HandlerFunc {
	return LoginHandler(m)
}

// LogoutHandler returns the logout handler bound to this middleware.
func (m *AuthMiddleware) LogoutHandler() http.HandlerFunc {
	return LogoutHandler(m)
}
