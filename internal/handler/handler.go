package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Dan9191/finhealth-service/internal/analysis"
	"github.com/Dan9191/finhealth-service/internal/config"
	"github.com/Dan9191/finhealth-service/internal/integrations/llm"
	"github.com/Dan9191/finhealth-service/internal/middleware"
	"github.com/Dan9191/finhealth-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

// ChatStreamer produces assistant tokens for a conversation.
type ChatStreamer interface {
	Stream(ctx context.Context, messages []llm.Message, onToken func(string) error) error
}

type Handler struct {
	svc           *service.Service
	chat          ChatStreamer
	log           *logrus.Logger
	config        *config.Config
	defaultLocale analysis.Locale
}

// NewHandler wires the HTTP layer. chat may be nil, in which case the chat
// endpoint answers 503.
func NewHandler(svc *service.Service, chat ChatStreamer, log *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		svc:           svc,
		chat:          chat,
		log:           log,
		config:        cfg,
		defaultLocale: analysis.ParseLocale(cfg.DefaultLocale),
	}
}

// Router builds the route table. Everything except registration, login and
// the health check requires a bearer token.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(h.log))

	// Public routes
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(h.svc, h.log))
	authRouter.HandleFunc("/auth/validate", h.Validate).Methods("GET")
	authRouter.HandleFunc("/auth/logout", h.Logout).Methods("POST")
	authRouter.HandleFunc("/user/email", h.UpdateEmail).Methods("PUT")

	authRouter.HandleFunc("/financial/analyze", h.Analyze).Methods("POST")
	authRouter.HandleFunc("/financial/save", h.Save).Methods("POST")
	authRouter.HandleFunc("/financial/latest", h.Latest).Methods("GET")
	authRouter.HandleFunc("/financial/list", h.List).Methods("GET")
	authRouter.HandleFunc("/financial/{id}/export", h.Export).Methods("GET")
	authRouter.HandleFunc("/financial/{id}", h.Get).Methods("GET")
	authRouter.HandleFunc("/financial/{id}", h.Delete).Methods("DELETE")

	authRouter.HandleFunc("/ai/chat", h.Chat).Methods("POST")
	return r
}

// Health reports whether storage answers.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.svc.Ping(ctx); err != nil {
		h.log.Warnf("Health check failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "unavailable",
			"storage": h.config.StorageBackend,
			"error":   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"storage": h.config.StorageBackend,
	})
}

// locale picks ?lang= first, then Accept-Language, then the configured
// default.
func (h *Handler) locale(r *http.Request) analysis.Locale {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return analysis.ParseLocale(lang)
	}
	if lang := r.Header.Get("Accept-Language"); lang != "" {
		return analysis.ParseLocale(lang)
	}
	return h.defaultLocale
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// serviceError maps service errors to status codes. Unknown errors are
// logged and hidden from the client.
func (h *Handler) serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrSessionExpired):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.log.Errorf("Request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func currentUserID(r *http.Request) string {
	if u, ok := service.UserFromContext(r.Context()); ok {
		return u.ID
	}
	return ""
}
