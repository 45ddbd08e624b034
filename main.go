package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"Truss/internal/auth"
	"Truss/internal/calc/bridge"
	"Truss/internal/calc/column"
	"Truss/internal/calc/flexure"
	"Truss/internal/calc/loads"
	"Truss/internal/calc/premium/autodesign"
	"Truss/internal/calc/premium/batch"
	"Truss/internal/calc/premium/recommend"
	"Truss/internal/config"
	"Truss/internal/history"
	"Truss/internal/logging"
	"Truss/internal/metrics"
	"Truss/internal/repo"
	"Truss/internal/truss"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, X-Analysis-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// HandleList registers every route of the service on router.
func HandleList(router *mux.Router, cfg config.Config, store repo.Repository, m *metrics.Collector, log *zap.Logger) {
	authEnv := &auth.Env{JWTKey: []byte(cfg.TokenKey), Repo: store, Log: log, Secure: cfg.TLS()}
	recorder := &history.Recorder{Repo: store, Log: log}
	calculator := bridge.NewCalculator(cfg.Material, truss.Solver{MaxCondition: cfg.MaxCondition})

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	router.Handle("/metrics", m.Handler()).Methods("GET")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.LoginHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")
	api.HandleFunc("/logout", authEnv.LogoutHandler).Methods("POST")

	// tools answer anonymous callers too; runs are saved for logged-in users
	tools := api.PathPrefix("/tools").Subrouter()
	tools.Use(authEnv.Optional)

	bridgeH := &bridge.Handler{Calculator: calculator, History: recorder, Metrics: m, Log: log}
	flexureH := &flexure.Handler{Defaults: cfg.Material, History: recorder, Metrics: m}
	columnH := &column.Handler{Defaults: cfg.Material}
	loadsH := &loads.Handler{}

	tools.HandleFunc("/bridge/calc", bridgeH.Calc).Methods("POST")
	tools.HandleFunc("/flexure/calc", flexureH.Calc).Methods("POST")
	tools.HandleFunc("/column/calc", columnH.Calc).Methods("POST")
	tools.HandleFunc("/loads/calc", loadsH.Calc).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.Middleware)

	historyH := &history.Handler{Repo: store, Log: log}
	secureApi.HandleFunc("/analyses", historyH.List).Methods("GET")
	secureApi.HandleFunc("/analyses/{id:[0-9]+}", historyH.Get).Methods("GET")

	batchH := &batch.Handler{Calculator: calculator, History: recorder}
	autoH := &autodesign.Handler{Calculator: calculator, History: recorder}
	recommendH := &recommend.Handler{Calculator: calculator}
	secureApi.HandleFunc("/premium/batch/bridge", batchH.Bridge).Methods("POST")
	secureApi.HandleFunc("/premium/autodesign/bridge", autoH.Bridge).Methods("POST")
	secureApi.HandleFunc("/premium/recommend/weld", recommendH.Weld).Methods("POST")
}

// NewHandler wraps the router with the middleware every request passes.
func NewHandler(cfg config.Config, store repo.Repository, m *metrics.Collector, log *zap.Logger) http.Handler {
	router := mux.NewRouter()
	router.Use(m.Middleware)
	HandleList(router, cfg, store, m, log)
	return logging.RequestID(logging.Middleware(log)(middleware.Recoverer(CORS(router))))
}

func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (repo.Repository, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, using in-memory storage")
		return repo.NewMemory(), func() {}, nil
	}
	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := repo.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return repo.NewPostgres(db), func() { db.Close() }, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}
	defer closeStore()

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: NewHandler(cfg, store, metrics.New("truss"), log),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("starting server", zap.String("addr", cfg.Addr), zap.Bool("tls", cfg.TLS()))
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	wg.Wait()
	log.Info("server stopped")
}
