package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/wnt/guiverse/internal/chain"
	"github.com/wnt/guiverse/internal/game"
	"github.com/wnt/guiverse/internal/view"
)

type traceKey struct{}

// Server exposes the game store and page views over HTTP
type Server struct {
	game   *game.Game
	chain  chain.Client
	feed   *view.Feed
	logger zerolog.Logger
}

// NewServer creates the API server
func NewServer(g *game.Game, c chain.Client, feed *view.Feed, logger zerolog.Logger) *Server {
	return &Server{
		game:   g,
		chain:  c,
		feed:   feed,
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// Router returns the route table
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.trace)

	r.HandleFunc("/healthz", s.health).Methods("GET")
	r.HandleFunc("/state", s.state).Methods("GET")

	r.HandleFunc("/wallet/connect", s.connect).Methods("POST")
	r.HandleFunc("/wallet/disconnect", s.disconnect).Methods("POST")
	r.HandleFunc("/wallet/chain-balance", s.chainBalance).Methods("GET")

	r.HandleFunc("/pets", s.mintPet).Methods("POST")
	r.HandleFunc("/pets/{id:[0-9]+}/train", s.trainPet).Methods("POST")
	r.HandleFunc("/pets/{id:[0-9]+}/battle", s.battlePet).Methods("POST")
	r.HandleFunc("/rewards/claim", s.claimRewards).Methods("POST")
	r.HandleFunc("/tips", s.tip).Methods("POST")

	views := r.PathPrefix("/views").Subrouter()
	views.HandleFunc("/nav", s.navView).Methods("GET")
	views.HandleFunc("/dashboard", s.dashboardView).Methods("GET")
	views.HandleFunc("/arena", s.arenaView).Methods("GET")
	views.HandleFunc("/shop", s.shopView).Methods("GET")
	views.HandleFunc("/training", s.trainingView).Methods("GET")
	views.HandleFunc("/social", s.socialView).Methods("GET")

	r.HandleFunc("/shop/items/{id:[0-9]+}/purchase", s.purchaseItem).Methods("POST")
	r.HandleFunc("/shop/special-deal", s.specialDeal).Methods("POST")
	r.HandleFunc("/arena/tournament", s.tournament).Methods("POST")

	r.HandleFunc("/social/posts", s.createPost).Methods("POST")
	r.HandleFunc("/social/posts/{id:[0-9]+}/like", s.likePost).Methods("POST")
	r.HandleFunc("/social/posts/{id:[0-9]+}/tip", s.tipPost).Methods("POST")
	r.HandleFunc("/social/posts/{id:[0-9]+}/share", s.sharePost).Methods("GET")

	return r
}

// trace tags every request with an id and logs it
func (s *Server) trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), traceKey{}, id)))

		s.logger.Debug().
			Str("trace_id", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("Request served")
	})
}

func traceID(r *http.Request) string {
	id, _ := r.Context().Value(traceKey{}).(string)
	return id
}

// fail writes err with the notification of action, if any
func (s *Server) fail(w http.ResponseWriter, r *http.Request, action game.Action, err error) {
	status, code := classify(err)
	var n *view.Notification
	if action != "" {
		notification := view.Notify(action, game.Result{}, err)
		n = &notification
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("trace_id", traceID(r)).Str("code", code).Msg("Request failed")
	}
	WriteError(w, status, code, err.Error(), traceID(r), n)
}

// respond writes the outcome of a store action
func (s *Server) respond(w http.ResponseWriter, r *http.Request, result game.Result, err error) {
	if err != nil {
		s.fail(w, r, result.Action, err)
		return
	}
	WriteSuccess(w, http.StatusOK, ActionResponse{
		Result:       result,
		Notification: view.Notify(result.Action, result, nil),
	})
}

func decode(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: invalid request body: %v", game.ErrInvalidInput, err)
	}
	return nil
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id", game.ErrInvalidInput)
	}
	return id, nil
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (game.Snapshot, bool) {
	snap, err := s.game.Snapshot(r.Context())
	if err != nil {
		s.fail(w, r, "", err)
		return game.Snapshot{}, false
	}
	return snap, true
}
