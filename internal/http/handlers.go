package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fairyhunter13/vending-machine-service/internal/auth"
	"github.com/fairyhunter13/vending-machine-service/internal/config"
	httpopenapi "github.com/fairyhunter13/vending-machine-service/internal/http/openapi"
	"github.com/fairyhunter13/vending-machine-service/internal/store"
	"github.com/fairyhunter13/vending-machine-service/internal/vending"
)

// App bundles the stores, the vending engine, and the auth port behind the
// HTTP handlers.
type App struct {
	Cfg      config.Config
	Users    *store.Users
	Products *store.Products
	Vending  *vending.Service
	Auth     *auth.Authenticator
	started  time.Time

	// ownerMu serializes product creation with owner deletion; the two
	// stores lock independently, so without it a product created between
	// the ownership count and the user delete would leave a dangling
	// seller reference.
	ownerMu sync.Mutex
}

// NewApp wires an App over the given stores.
func NewApp(cfg config.Config, users *store.Users, products *store.Products) *App {
	return &App{
		Cfg:      cfg,
		Users:    users,
		Products: products,
		Vending:  vending.NewService(users, products),
		Auth:     auth.New(users),
		started:  time.Now(),
	}
}

// decodeJSON decodes a JSON request body into dst, rejecting unknown fields
// and non-JSON content types. It writes the error response itself and
// reports whether decoding succeeded.
func (a *App) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json")
		return false
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	deposits, purchases := a.Vending.Metrics()
	m := map[string]any{
		"deposits":   deposits,
		"purchases":  purchases,
		"users":      a.Users.Len(),
		"products":   a.Products.Len(),
		"uptime_sec": time.Since(a.started).Seconds(),
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	_, _ = w.Write([]byte(html))
}
