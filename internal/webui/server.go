// Package webui serves the single-user search form: a query input, a
// remote-extraction toggle, and a panel showing the resolved filters, the
// search URL and the discovered postings.
package webui

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hyperifyio/gojobsearch/internal/app"
)

//go:embed index.html.tmpl
var templates embed.FS

const defaultQuery = "internships Bangalore pursuing degree"

// Server holds the handlers around one App.
type Server struct {
	app *app.App
}

// NewRouter builds the gin engine with the page and the JSON API mounted.
func NewRouter(a *app.App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), cors.Default())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templates, "index.html.tmpl")))

	s := &Server{app: a}
	r.GET("/", s.index)
	r.GET("/search", s.search)
	r.GET("/api/search", s.apiSearch)
	return r
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html.tmpl", gin.H{
		"Query":         defaultQuery,
		"RemoteEnabled": s.app.RemoteEnabled(),
	})
}

func (s *Server) search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	useRemote := isTruthy(c.Query("remote"))
	outcome := s.app.Search(c.Request.Context(), query, useRemote)
	c.HTML(http.StatusOK, "index.html.tmpl", gin.H{
		"Query":         query,
		"RemoteEnabled": s.app.RemoteEnabled(),
		"RemoteChecked": useRemote,
		"Searched":      true,
		"Outcome":       outcome,
	})
}

func (s *Server) apiSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}
	useRemote := isTruthy(c.Query("remote"))
	c.JSON(http.StatusOK, s.app.Search(c.Request.Context(), query, useRemote))
}

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
