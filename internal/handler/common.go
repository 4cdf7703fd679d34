package handler // handler defines http handlers

import (
    "errors"  // errors provides the sentinel used in getUserID
    "strconv" // strconv converts strings to numeric types
    "time"    // time supplies the injectable clock below

    "github.com/labstack/echo/v4" // echo defines request context types
)

// timeNow is stubbed in tests to pin obtained_at timestamps.
var timeNow = func() time.Time { return time.Now().UTC() }

// getUserID extracts the user_id from echo.Context and converts it to uint64.
// The JWT middleware stores the subject claim under "user_id"; depending on
// how the token was decoded the value may arrive as several numeric types
// or a string.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}
