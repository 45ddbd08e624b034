package history

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"Truss/internal/auth"
	"Truss/internal/repo"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Recorder stores calculation runs for the authenticated user. A nil
// Recorder or one without a repository records nothing.
type Recorder struct {
	Repo repo.Repository
	Log  *zap.Logger
}

// Record saves one run and returns its id. Anonymous requests and storage
// failures are not errors for the caller: the calculation already succeeded.
func (rec *Recorder) Record(ctx context.Context, kind string, input, result any, safe bool) (int, bool) {
	if rec == nil || rec.Repo == nil {
		return 0, false
	}
	userID, ok := auth.UserID(ctx)
	if !ok {
		return 0, false
	}
	in, err := json.Marshal(input)
	if err != nil {
		rec.logger().Warn("encode input", zap.String("kind", kind), zap.Error(err))
		return 0, false
	}
	out, err := json.Marshal(result)
	if err != nil {
		rec.logger().Warn("encode result", zap.String("kind", kind), zap.Error(err))
		return 0, false
	}
	id, err := rec.Repo.SaveAnalysis(ctx, repo.Analysis{
		UserID: userID,
		Kind:   kind,
		Input:  in,
		Result: out,
		Safe:   safe,
	})
	if err != nil {
		rec.logger().Warn("save analysis", zap.String("kind", kind), zap.Int("user_id", userID), zap.Error(err))
		return 0, false
	}
	return id, true
}

// RecordHeader stores the run and exposes its id as X-Analysis-ID.
func (rec *Recorder) RecordHeader(w http.ResponseWriter, r *http.Request, kind string, input, result any, safe bool) {
	if id, ok := rec.Record(r.Context(), kind, input, result, safe); ok {
		w.Header().Set("X-Analysis-ID", strconv.Itoa(id))
	}
}

func (rec *Recorder) logger() *zap.Logger {
	if rec.Log == nil {
		return zap.NewNop()
	}
	return rec.Log
}

type Handler struct {
	Repo repo.Repository
	Log  *zap.Logger
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	limit := DefaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, MaxLimit)
	}
	list, err := h.Repo.ListAnalyses(r.Context(), userID, limit)
	if err != nil {
		h.Log.Error("list analyses", zap.Int("user_id", userID), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	a, err := h.Repo.GetAnalysis(r.Context(), userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Analysis not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Log.Error("get analysis", zap.Int("user_id", userID), zap.Int("id", id), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}
