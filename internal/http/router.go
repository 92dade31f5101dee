package httpapi

import (
	"expvar"
	"net/http"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
// Mutating routes other than registration require basic auth.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", app.registerUserHandler)
	mux.HandleFunc("GET /users", app.listUsersHandler)
	mux.HandleFunc("GET /users/{username}", app.getUserHandler)
	mux.HandleFunc("PUT /users/{username}/seller", app.RequireAuth(app.updateSellerHandler))
	mux.HandleFunc("DELETE /users/{username}", app.RequireAuth(app.deleteUserHandler))

	mux.HandleFunc("POST /products", app.RequireAuth(app.createProductHandler))
	mux.HandleFunc("GET /products", app.listProductsHandler)
	mux.HandleFunc("GET /products/{id}", app.getProductHandler)
	mux.HandleFunc("PUT /products/{id}", app.RequireAuth(app.updateProductHandler))
	mux.HandleFunc("DELETE /products/{id}", app.RequireAuth(app.deleteProductHandler))

	mux.HandleFunc("POST /deposit", app.RequireAuth(app.depositHandler))
	mux.HandleFunc("POST /buy", app.RequireAuth(app.buyHandler))
	mux.HandleFunc("POST /reset/{username}", app.RequireAuth(app.resetHandler))

	mux.HandleFunc("GET /healthz", app.healthHandler)
	mux.HandleFunc("GET /debug/metrics", app.metricsHandler)
	mux.Handle("GET /debug/vars", expvar.Handler())
	mux.HandleFunc("GET /openapi.yaml", app.openapiHandler)
	mux.HandleFunc("GET /docs", app.docsHandler)

	return WithRequestID(WithLogging(mux))
}
