// Package dashboard serves the read-only economy dashboard and its JSON API.
package dashboard

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-vault/internal/domain"
	"github.com/go-petr/pet-vault/internal/middleware"
)

//go:embed web
var assets embed.FS

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".js":   "application/javascript",
	".css":  "text/css",
	".wasm": "application/wasm",
	".png":  "image/png",
	".json": "application/json",
}

// Registry lists the economies shown on the dashboard.
//
//go:generate mockgen -source dashboard.go -destination dashboard_mock.go -package dashboard
type Registry interface {
	All() []domain.PlayerEconomy
	Lookup(id string) (domain.PlayerEconomy, error)
	Default() (domain.PlayerEconomy, error)
}

// Server holds the dashboard router.
type Server struct {
	Engine *gin.Engine
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates the dashboard Server backed by registry.
func New(registry Registry, logger zerolog.Logger) *Server {
	handler := NewHandler(registry)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	api := engine.Group("/api")
	api.GET("/economies", handler.ListEconomies)
	api.GET("/economies/:id/top", handler.TopAccounts)
	api.GET("/economies/:id/accounts/:uuid", handler.Account)

	engine.NoRoute(serveAsset)

	return &Server{Engine: engine}
}

func serveAsset(gctx *gin.Context) {
	if gctx.Request.Method != http.MethodGet && gctx.Request.Method != http.MethodHead {
		gctx.Status(http.StatusNotFound)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+gctx.Request.URL.Path), "/")
	if name == "" {
		name = "index.html"
	}

	body, err := fs.ReadFile(assets, "web/"+name)
	if err != nil {
		gctx.String(http.StatusNotFound, "404 Not Found")
		return
	}

	gctx.Data(http.StatusOK, contentType(name), body)
}

func contentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}

	return "application/octet-stream"
}
