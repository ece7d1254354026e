package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// handle registers h for path both with and without a trailing slash.
func handle(r *mux.Router, path string, h http.HandlerFunc, method string) {
	r.HandleFunc(path, h).Methods(method)
	r.HandleFunc(path+"/", h).Methods(method)
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	// recover again below metrics so panics are counted as 500s
	api.Use(s.metrics.middleware, s.withRecover, s.withSession)

	handle(api, "/register", s.register, http.MethodPost)
	handle(api, "/login", s.login, http.MethodPost)
	handle(api, "/users/{id:[0-9]+}", s.getUser, http.MethodGet)

	handle(api, "/adv", s.listAdverts, http.MethodGet)
	handle(api, "/adv", s.authenticated(s.createAdvert), http.MethodPost)
	handle(api, "/adv/{id:[0-9]+}", s.getAdvert, http.MethodGet)
	handle(api, "/adv/{id:[0-9]+}", s.authenticated(s.updateAdvert), http.MethodPatch)
	handle(api, "/adv/{id:[0-9]+}", s.authenticated(s.deleteAdvert), http.MethodDelete)

	return r
}
