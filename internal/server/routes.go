package server

import (
	"encoding/json"
	"net/http"

	"briscola-game/internal/cpu"

	"github.com/gorilla/mux"
)

// NewRouter wires the websocket endpoint, the JSON API and the static files.
func NewRouter(hub *Hub, staticDir string) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r)
	})

	// API routes sit on the root router: a method mismatch on a subrouter
	// answers 404 instead of 405.
	r.HandleFunc("/api/difficulties", GetDifficultiesHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/games", func(w http.ResponseWriter, r *http.Request) {
		GetGamesHandler(hub, w, r)
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/games/{id}", func(w http.ResponseWriter, r *http.Request) {
		GetGameHandler(hub, w, r)
	}).Methods(http.MethodGet)

	if staticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))
	}

	hub.log.WithField("static_dir", staticDir).Info("Routes registered")
	return r
}

// GetDifficultiesHandler lists the CPU levels a game can be started with.
func GetDifficultiesHandler(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(cpu.Levels))
	for _, level := range cpu.Levels {
		names = append(names, level.String())
	}
	writeJSON(w, http.StatusOK, names)
}

func GetGamesHandler(hub *Hub, w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, hub.Sessions())
}

func GetGameHandler(hub *Hub, w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	status, ok := hub.Session(id)
	if !ok {
		http.Error(w, errUnknownSession.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
