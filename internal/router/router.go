package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/aircraft-hangar/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/aircraft-hangar/internal/middleware" // import middleware for JWT authentication
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Create a route group under the /v1/auth prefix for operations that do
	// not require an existing session (register, login, refresh).  Each of
	// these handlers is responsible for generating or exchanging tokens.
	g := e.Group("/v1/auth")
	// Register a POST endpoint to handle user registration at /v1/auth/register.
	g.POST("/register", a.Register)
	// Register a POST endpoint to handle user login at /v1/auth/login.
	g.POST("/login", a.Login)
	// Register a POST endpoint to refresh access tokens at /v1/auth/refresh. This rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Register a POST endpoint to issue a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Register a POST endpoint to log out using a refresh token.  Logout does
	// not require JWT authentication: the handler accepts a JSON body with a
	// `refresh_token` and will invalidate that token.  If the token is valid,
	// a 204 response is returned; otherwise 400/401/500 are possible
	// depending on the error.
	g.POST("/logout", a.Logout)

	// Create another group for routes that require a valid access token.  All
	// handlers registered on this group will execute the JWTAuth middleware
	// before being invoked.  Protected endpoints live under /v1.
	auth := e.Group("/v1")
	// Apply the JWTAuth middleware to the protected group using the provided secret.
	auth.Use(middleware.JWTAuth(jwtSecret))
	// Register a GET endpoint at /v1/me that returns the authenticated user's information.
	auth.GET("/me", a.Me)

	// Additionally map POST /v1/logout to the same handler.  This route lives
	// at the top level (outside of the protected group) so it does not
	// require a JWT.  Clients can therefore call either /v1/auth/logout or
	// /v1/logout with a valid refresh token in the body to terminate a
	// session.
	e.POST("/v1/logout", a.Logout)
}

// RegisterHangar registers the collection management endpoints under /v1.
// All routes require a valid JWT: listing and inspecting aircraft, creating
// and deleting custom entries, toggling caught status, importing CSV files
// and reading dashboard statistics all operate on the authenticated user's
// collection.
func RegisterHangar(e *echo.Echo, h *handler.HangarHandler, imp *handler.ImportHandler, s *handler.StatsHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
	)
	// Browse the merged view of master and user-created aircraft together
	// with the caller's caught status.  Supports ?search, ?rarity, ?caught
	// and ?missing query parameters.
	g.GET("/aircraft", h.List)
	// Inspect a single aircraft by id, with caught status attached.
	g.GET("/aircraft/:id", h.Get)
	// Create a custom aircraft owned by the caller.  Pass auto_catch=true in
	// the body to mark it caught immediately.
	g.POST("/aircraft", h.Create)
	// Delete a custom aircraft.  Master entries and other users' entries are
	// rejected with 403/404 inside the handler.
	g.DELETE("/aircraft/:id", h.Delete)
	// Mark an aircraft as caught in the caller's collection.
	g.PUT("/aircraft/:id/caught", h.Catch)
	// Remove the caught flag again.  This is the only way possession goes
	// backwards; CSV imports never downgrade it.
	g.DELETE("/aircraft/:id/caught", h.Release)

	// Upload a CSV file (multipart "file" field or raw body) and reconcile it
	// against the caller's collection.  Responds with an import report.
	g.POST("/import", imp.ImportCSV)

	// Dashboard statistics for the caller's collection.
	g.GET("/stats", s.Dashboard)
	g.GET("/stats/categories", s.Categories)
}

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  The catalog route returns the master aircraft list without
// any per-user status, so guests can preview the collection before signing
// up.  Optional middleware (e.g. a Redis response cache) can be passed in.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mw ...echo.MiddlewareFunc) {
	// Expose the master catalog.  Supports the same ?search and ?rarity
	// filters as the authenticated list endpoint.
	e.GET("/v1/catalog", p.Catalog, mw...)
}
