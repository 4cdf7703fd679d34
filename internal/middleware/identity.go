package middleware

// identity.go defines helpers shared across middleware files for pulling
// the acting user out of the Echo context. The rate limiter uses the
// string form to build per-user bucket keys; "anon" is returned when no
// user is authenticated.

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// currentUserID returns the user identifier stored by JWTAuth as a
// string, or "anon" when the request carries no authenticated user.
func currentUserID(c echo.Context) string {
    v := c.Get("user_id")
    if v == nil {
        return "anon"
    }
    switch t := v.(type) {
    case string:
        if t != "" {
            return t
        }
        return "anon"
    case float64:
        return fmt.Sprintf("%.0f", t)
    case uint64:
        return fmt.Sprintf("%d", t)
    }
    return "anon"
}
