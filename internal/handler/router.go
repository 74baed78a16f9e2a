package handler

import (
	"net/http"

	"gympoint/internal/metrics"
	"gympoint/internal/middleware"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Deps struct {
	Students    *StudentHandler
	HelpOrders  *HelpOrderHandler
	Plans       *PlanHandler
	Enrollments *EnrollmentHandler
	Sessions    *SessionHandler
	Imports     *ImportHandler

	Tokens         middleware.TokenParser
	Metrics        *metrics.Metrics
	Log            logrus.FieldLogger
	AllowedOrigins []string
}

// NewRouter wires every route. Everything except sign-in, health and
// metrics needs a bearer token.
func NewRouter(d Deps) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Logging(d.Log))
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
		r.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc("/health", Health).Methods(http.MethodGet)
	r.HandleFunc("/sessions", d.Sessions.Create).Methods(http.MethodPost)

	api := r.NewRoute().Subrouter()
	api.Use(middleware.Auth(d.Tokens))

	api.HandleFunc("/students", d.Students.List).Methods(http.MethodGet)
	api.HandleFunc("/students", d.Students.Create).Methods(http.MethodPost)
	api.HandleFunc("/students/{id:[0-9]+}", d.Students.Get).Methods(http.MethodGet)
	api.HandleFunc("/students/{id:[0-9]+}", d.Students.Update).Methods(http.MethodPut)
	api.HandleFunc("/students/{id:[0-9]+}", d.Students.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/students/{id:[0-9]+}/help-orders", d.HelpOrders.ListByStudent).Methods(http.MethodGet)
	api.HandleFunc("/students/{id:[0-9]+}/help-orders", d.HelpOrders.Ask).Methods(http.MethodPost)

	if d.Imports != nil {
		api.HandleFunc("/students/import", d.Imports.Upload).Methods(http.MethodPost)
		api.HandleFunc("/students/import/progress", d.Imports.AllProgress).Methods(http.MethodGet)
		api.HandleFunc("/students/import/progress/{file}", d.Imports.FileProgress).Methods(http.MethodGet)
		api.HandleFunc("/students/import/events", d.Imports.Events).Methods(http.MethodGet)
	}

	api.HandleFunc("/help-orders", d.HelpOrders.ListUnanswered).Methods(http.MethodGet)
	api.HandleFunc("/help-orders/{id:[0-9]+}/answer", d.HelpOrders.Answer).Methods(http.MethodPost)

	api.HandleFunc("/plans", d.Plans.List).Methods(http.MethodGet)
	api.HandleFunc("/plans", d.Plans.Create).Methods(http.MethodPost)
	api.HandleFunc("/plans/{id:[0-9]+}", d.Plans.Get).Methods(http.MethodGet)
	api.HandleFunc("/plans/{id:[0-9]+}", d.Plans.Update).Methods(http.MethodPut)
	api.HandleFunc("/plans/{id:[0-9]+}", d.Plans.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/enrollments", d.Enrollments.List).Methods(http.MethodGet)
	api.HandleFunc("/enrollments", d.Enrollments.Create).Methods(http.MethodPost)
	api.HandleFunc("/enrollments/{id:[0-9]+}", d.Enrollments.Get).Methods(http.MethodGet)
	api.HandleFunc("/enrollments/{id:[0-9]+}", d.Enrollments.Update).Methods(http.MethodPut)
	api.HandleFunc("/enrollments/{id:[0-9]+}", d.Enrollments.Delete).Methods(http.MethodDelete)

	var h http.Handler = r
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(d.Log), handlers.PrintRecoveryStack(true))(h)
	h = handlers.CORS(
		handlers.AllowedOrigins(d.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)(h)
	return h
}
