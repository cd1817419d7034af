// Package router is a small method-aware wrapper over http.ServeMux with
// wildcard path segments and colored request logging.
package router

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// ANSI color codes for request logging.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type HandlerFunc func(http.ResponseWriter, *http.Request)

type route struct {
	method   string
	segments []string // "*" matches one segment; a trailing "*" matches the rest
	handler  HandlerFunc
}

// Router dispatches requests to registered routes in registration order, so
// more specific routes should be registered first.
type Router struct {
	routes []route
}

func New() *Router {
	return &Router{}
}

func (r *Router) GET(path string, h HandlerFunc)    { r.register(http.MethodGet, path, h) }
func (r *Router) POST(path string, h HandlerFunc)   { r.register(http.MethodPost, path, h) }
func (r *Router) PUT(path string, h HandlerFunc)    { r.register(http.MethodPut, path, h) }
func (r *Router) DELETE(path string, h HandlerFunc) { r.register(http.MethodDelete, path, h) }

func (r *Router) register(method, path string, h HandlerFunc) {
	r.routes = append(r.routes, route{
		method:   method,
		segments: splitPath(path),
		handler:  h,
	})
}

// ServeHTTP implements http.Handler with request logging.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

	segments := splitPath(req.URL.Path)
	handler, pathKnown := r.match(req.Method, segments)
	switch {
	case handler != nil:
		handler(lrw, req)
	case pathKnown:
		http.Error(lrw, "Method Not Allowed", http.StatusMethodNotAllowed)
	default:
		http.Error(lrw, "Not Found", http.StatusNotFound)
	}

	duration := time.Since(start)
	log.Printf("%s[%s]%s %s%s%s %s %s%d%s %s(%v)%s",
		colorCyan, start.Format("2006-01-02 15:04:05"), colorReset,
		methodColor(req.Method), req.Method, colorReset,
		req.URL.Path,
		statusColor(lrw.statusCode), lrw.statusCode, colorReset,
		colorBlue, duration, colorReset,
	)
}

// match returns the first route whose pattern fits the request path, and
// whether any route matched the path regardless of method.
func (r *Router) match(method string, segments []string) (HandlerFunc, bool) {
	pathKnown := false
	for _, rt := range r.routes {
		if !matchSegments(segments, rt.segments) {
			continue
		}
		pathKnown = true
		if rt.method == method {
			return rt.handler, true
		}
	}
	return nil, pathKnown
}

func matchSegments(path, pattern []string) bool {
	for i, p := range pattern {
		if p == "*" && i == len(pattern)-1 {
			// Trailing wildcard swallows the rest of the path.
			return len(path) >= len(pattern)
		}
		if i >= len(path) {
			return false
		}
		if p != "*" && p != path[i] {
			return false
		}
	}
	return len(path) == len(pattern)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// Start runs the HTTP server on addr and blocks.
func (r *Router) Start(addr string) {
	log.Printf("🚀 Server started on %shttp://localhost%s%s", colorGreen, addr, colorReset)
	log.Fatal(http.ListenAndServe(addr, r))
}

// loggingResponseWriter captures status codes for the request log.
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusColor(code int) string {
	switch {
	case code >= 200 && code < 300:
		return colorGreen
	case code >= 300 && code < 400:
		return colorCyan
	case code >= 400 && code < 500:
		return colorYellow
	default:
		return colorRed
	}
}

func methodColor(method string) string {
	switch method {
	case http.MethodGet:
		return colorGreen
	case http.MethodPost:
		return colorBlue
	case http.MethodPut:
		return colorYellow
	case http.MethodDelete:
		return colorRed
	default:
		return colorCyan
	}
}
