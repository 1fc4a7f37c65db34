// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/byteandblog/internal/platform/apperr"
	"github.com/taibuivan/byteandblog/internal/platform/constants"
	"github.com/taibuivan/byteandblog/internal/platform/ctxutil"
	"github.com/taibuivan/byteandblog/internal/platform/respond"
	"github.com/taibuivan/byteandblog/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
// [*sec.TokenService] satisfies it.
type TokenVerifier interface {
	Verify(tokenString string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the bearer token from the Authorization header.
//
// # Flow
//  1. No 'Authorization' header: the request proceeds as anonymous.
//  2. Header not of the form 'Bearer <token>': anonymous.
//  3. Verification fails (bad signature or expired): anonymous, logged at debug.
//  4. Success: [*sec.AuthClaims] is injected into the request context.
//
// The gate never rejects on its own. Rejection belongs to [RequireAuth] and
// [RequireRole] mounted on the routes that need them.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// 1. Anonymous Access
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Format Validation
			tokenString, ok := bearerToken(authHeader)
			if !ok {
				ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "auth_header_malformed")
				next.ServeHTTP(writer, request)
				return
			}

			// 3. Token Verification
			claims, err := verifier.Verify(tokenString)
			if err != nil {
				reason := "invalid_signature"
				if errors.Is(err, sec.ErrTokenExpired) {
					reason = "expired"
				}
				ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "auth_token_rejected",
					slog.String("reason", reason),
				)
				next.ServeHTTP(writer, request)
				return
			}

			// 4. Context Injection
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// bearerToken splits "Bearer <token>" and returns the token part.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != constants.BearerScheme {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.Contains(token, " ") {
		return "", false
	}

	return token, true
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests if the authenticated user doesn't carry role.
//
// It implies [RequireAuth]: anonymous requests get 401, authenticated
// principals without the role get 403.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())

			// 1. Authentication Check
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// 2. Authorization Check
			if !claims.HasRole(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
