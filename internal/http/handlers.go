package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"gridiron/internal/query"
	"gridiron/internal/schema"
	"gridiron/internal/stats"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		if err := s.Store.Ping(r.Context()); err != nil {
			log.Error("Health check failed", "error", err)
			writeError(w, http.StatusInternalServerError, "storage_unavailable", "Database is unreachable")
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// PlayersByPositionHandler lists every player at a position, ordered by
// fantasy points. The DEF tag returns the merged defensive positions.
func (s *Server) PlayersByPositionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := r.PathValue("position")
		if !schema.IsAggregate(tag) {
			if _, err := schema.Lookup(tag); err != nil {
				writeError(w, http.StatusBadRequest, "validation_error", err.Error())
				return
			}
		}

		s.Metrics.IncPlayerQueries()
		start := time.Now()
		players, err := s.Store.ByPosition(r.Context(), tag)
		if err != nil {
			s.respondStoreError(w, err)
			return
		}
		s.Metrics.ObserveQueryDuration(time.Since(start).Seconds())

		// An unpopulated position is not an error: the roster is just empty.
		writeJSON(w, http.StatusOK, players)
	}
}

// TeamPlayersHandler lists every player on a team across all positions.
func (s *Server) TeamPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.PathValue("teamCode")

		s.Metrics.IncTeamQueries()
		start := time.Now()
		players, err := s.Store.ByTeam(r.Context(), code)
		if err != nil {
			s.respondStoreError(w, err)
			return
		}
		s.Metrics.ObserveQueryDuration(time.Since(start).Seconds())

		if len(players) == 0 {
			writeError(w, http.StatusNotFound, "not_found", fmt.Sprintf("No players found for team '%s'", code))
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

// SearchHandler finds players by name substring, optionally scoped to a position.
func (s *Server) SearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.URL.Query().Get("name"))
		if name == "" {
			writeError(w, http.StatusBadRequest, "validation_error", "The 'name' query parameter is required")
			return
		}
		tag := r.URL.Query().Get("position")
		if tag != "" {
			if schema.IsAggregate(tag) {
				writeError(w, http.StatusBadRequest, "validation_error", "Name search cannot target the DEF aggregate; use LB, DL or DB")
				return
			}
			if _, err := schema.Lookup(tag); err != nil {
				writeError(w, http.StatusBadRequest, "validation_error", err.Error())
				return
			}
		}

		s.Metrics.IncSearches()
		start := time.Now()
		players, err := s.Store.Search(r.Context(), name, tag)
		if err != nil {
			s.respondStoreError(w, err)
			return
		}
		s.Metrics.ObserveQueryDuration(time.Since(start).Seconds())

		if len(players) == 0 {
			writeError(w, http.StatusNotFound, "not_found", fmt.Sprintf("No players matched '%s'", name))
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

// respondStoreError maps storage-layer errors onto HTTP responses. Internal
// detail stays in the logs, not in the response body.
func (s *Server) respondStoreError(w http.ResponseWriter, err error) {
	var validationErr *query.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, "validation_error", validationErr.Error())
		return
	}

	s.Metrics.IncStoreErrors()

	var mismatchErr *stats.SchemaMismatchError
	if errors.As(err, &mismatchErr) {
		log.Error("Schema mismatch", "error", err)
		writeError(w, http.StatusInternalServerError, "schema_mismatch", "Stored data does not match the expected schema")
		return
	}

	var timeoutErr *stats.StorageTimeoutError
	if errors.As(err, &timeoutErr) {
		log.Error("Store query timed out", "error", err)
		writeError(w, http.StatusInternalServerError, "storage_timeout", "The database took too long to respond")
		return
	}

	log.Error("Store query failed", "error", err)
	writeError(w, http.StatusInternalServerError, "storage_unavailable", "The database is unavailable")
}

// LeaderboardCommandHandler returns a handler for the /leaderboard Slack command.
// The command text selects the position and defaults to QB.
func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		tag := strings.TrimSpace(r.FormValue("text"))
		if tag == "" {
			tag = "QB"
		}
		if !schema.IsAggregate(tag) {
			if _, err := schema.Lookup(tag); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}

		players, err := s.Store.ByPosition(r.Context(), tag)
		if err != nil {
			http.Error(w, "Failed to get player stats", http.StatusInternalServerError)
			log.Error("Failed to get player stats from store", "error", err)
			return
		}

		msg, err := s.Notifier.FormatLeaderboardResponse(players, string(schema.Normalize(tag)))
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}

// PlayerStatsCommandHandler returns a handler for the /player-stats Slack command.
func (s *Server) PlayerStatsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		playerName := strings.TrimSpace(r.FormValue("text"))
		if playerName == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received player stats command", "player", playerName)

		players, err := s.Store.Search(r.Context(), playerName, "")
		var msg any
		if err != nil || len(players) == 0 {
			if err != nil {
				log.Warn("Could not find player stats", "player", playerName, "error", err)
			}
			msg, err = s.Notifier.FormatPlayerNotFoundResponse(playerName)
		} else {
			msg, err = s.Notifier.FormatPlayerStatsResponse(&players[0], playerName)
		}

		if err != nil {
			http.Error(w, "Failed to format player stats", http.StatusInternalServerError)
			log.Error("Failed to format player stats", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}
