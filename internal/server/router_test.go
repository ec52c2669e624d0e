package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBasicRouter(t *testing.T) {
	t.Run("Handle Registers Method And Path", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("pong"))
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
			t.Errorf("expected pong response, got %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("Method Mismatch Rejected", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("Middleware Applied In Reverse Order", func(t *testing.T) {
		var order []string

		mw := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mw("first"), mw("second"))
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

		if len(order) != 3 || order[0] != "first" || order[1] != "second" || order[2] != "handler" {
			t.Errorf("unexpected execution order: %v", order)
		}
	})

	t.Run("Path Wildcards", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/items/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(r.PathValue("id")))
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))

		if rec.Body.String() != "42" {
			t.Errorf("expected wildcard value, got %q", rec.Body.String())
		}
	})
}
