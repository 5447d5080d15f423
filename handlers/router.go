package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"todo-api-v2/middleware"
)

// NewRouter wires every route. All /tasks routes sit behind the bearer-token
// middleware; /register and /login do not.
func NewRouter(h *Handlers, tokens middleware.TokenVerifier) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	router.HandleFunc("/login", h.Login).Methods(http.MethodPost)

	tasks := router.PathPrefix("/tasks").Subrouter()
	tasks.Use(middleware.Auth(tokens))
	tasks.HandleFunc("", h.ListTasks).Methods(http.MethodGet)
	tasks.HandleFunc("", h.CreateTask).Methods(http.MethodPost)
	tasks.HandleFunc("/{id:[0-9]+}", h.GetTask).Methods(http.MethodGet)
	tasks.HandleFunc("/{id:[0-9]+}", h.UpdateTask).Methods(http.MethodPatch)
	tasks.HandleFunc("/{id:[0-9]+}/status", h.SetTaskStatus).Methods(http.MethodPatch)
	tasks.HandleFunc("/{id:[0-9]+}", h.DeleteTask).Methods(http.MethodDelete)

	return router
}
