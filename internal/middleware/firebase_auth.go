package middleware

import (
	"fmt"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

// FirebaseAuthMiddleware verifies Firebase ID tokens. The identity provider
// mints a "user_id" custom claim when it provisions the account; that claim
// is the id every resource references.
func FirebaseAuthMiddleware(authClient *auth.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idToken, err := bearerToken(c)
			if err != nil {
				return err
			}

			token, err := authClient.VerifyIDToken(c.Request().Context(), idToken)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("Invalid or expired ID token: %v", err))
			}

			raw, ok := token.Claims["user_id"].(float64)
			if !ok || raw <= 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token carries no user identity")
			}

			c.Set(ContextUserIDKey, uint(raw))
			c.Set("firebaseUID", token.UID)

			return next(c)
		}
	}
}
