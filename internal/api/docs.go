package api

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
)

const (
	apiTitle       = "Weather Dashboard API"
	apiVersion     = "1.0.0"
	apiDescription = "A simple weather API for the weather dashboard"
)

var routeSummaries = map[string]string{
	"/":                                "Health check",
	"/docs":                            "API documentation",
	"/api/weather/current/{location}":  "Current weather for a city name or \"lat,lon\" pair",
	"/api/weather/forecast/{location}": "Daily forecast; optional days query param (1-14, default 7)",
}

// RouteDoc describes a single registered route.
type RouteDoc struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Summary string `json:"summary,omitempty"`
}

// Docs is the body served at /docs.
type Docs struct {
	Title       string     `json:"title"`
	Version     string     `json:"version"`
	Description string     `json:"description"`
	Routes      []RouteDoc `json:"routes"`
}

// DocsHandlerFunc returns an http.HandlerFunc listing every route registered on routes.
func DocsHandlerFunc(routes chi.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var docs []RouteDoc
		err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			docs = append(docs, RouteDoc{Method: method, Path: route, Summary: routeSummaries[route]})
			return nil
		})
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "listing routes failed")
			return
		}

		sort.Slice(docs, func(i, j int) bool {
			if docs[i].Path != docs[j].Path {
				return docs[i].Path < docs[j].Path
			}
			return docs[i].Method < docs[j].Method
		})

		writeJSON(w, http.StatusOK, Docs{
			Title:       apiTitle,
			Version:     apiVersion,
			Description: apiDescription,
			Routes:      docs,
		})
	}
}
