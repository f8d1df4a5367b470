package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	u "github.com/riteshkumar/finapi/internal/utils"
)

type RootHandler struct{}

func (h RootHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.Welcome).Methods(http.MethodGet)
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
}

func (h RootHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	u.WriteMessage(w, http.StatusOK, "Finapi, welcome")
}

func (h RootHandler) Health(w http.ResponseWriter, r *http.Request) {
	u.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
