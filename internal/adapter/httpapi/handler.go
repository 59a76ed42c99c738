package httpapi

import (
	"context"
	"errors"
	"net/http"

	"kofi-relay/internal/adapter/kofi"
	"kofi-relay/internal/domain/model"
	"kofi-relay/internal/domain/ports"
	"kofi-relay/internal/usecase"
)

// Relayer is the part of the relay use case the HTTP layer depends on.
type Relayer interface {
	Relay(ctx context.Context, event model.IncomingEvent) error
	SendTest(ctx context.Context) error
}

// ServiceInfo is the non-secret configuration echoed by the status endpoints.
type ServiceInfo struct {
	Version              string
	Language             string
	KofiName             string
	Port                 string
	ConfigPath           string
	HasWebhookURL        bool
	HasVerificationToken bool
}

// Handler serves the relay endpoints.
type Handler struct {
	relay  Relayer
	info   ServiceInfo
	logger ports.Logger
}

// NewHandler constructs a Handler.
func NewHandler(relay Relayer, info ServiceInfo, logger ports.Logger) *Handler {
	return &Handler{relay: relay, info: info, logger: logger}
}

type statusResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Version  string `json:"version"`
	Language string `json:"language"`
	KofiName string `json:"kofiName"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Version  string `json:"version"`
	Language string `json:"language"`
	KofiName string `json:"kofiName"`
}

type configResponse struct {
	Success              bool    `json:"success"`
	Version              string  `json:"version"`
	ConfigLoaded         bool    `json:"configLoaded"`
	ConfigPath           *string `json:"configPath"`
	Language             string  `json:"language"`
	KofiName             string  `json:"kofiName"`
	Port                 string  `json:"port"`
	HasWebhookURL        bool    `json:"hasWebhookUrl"`
	HasVerificationToken bool    `json:"hasVerificationToken"`
}

// Status handles GET /.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, statusResponse{
		Success:  true,
		Message:  h.info.KofiName + " to Discord webhook service is online!",
		Version:  h.info.Version,
		Language: h.info.Language,
		KofiName: h.info.KofiName,
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Status:   "OK",
		Message:  h.info.KofiName + " to Discord webhook service is running",
		Version:  h.info.Version,
		Language: h.info.Language,
		KofiName: h.info.KofiName,
	})
}

// Config handles GET /config. It never exposes secrets.
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	resp := configResponse{
		Success:              true,
		Version:              h.info.Version,
		ConfigLoaded:         h.info.ConfigPath != "",
		Language:             h.info.Language,
		KofiName:             h.info.KofiName,
		Port:                 h.info.Port,
		HasWebhookURL:        h.info.HasWebhookURL,
		HasVerificationToken: h.info.HasVerificationToken,
	}
	if h.info.ConfigPath != "" {
		path := h.info.ConfigPath
		resp.ConfigPath = &path
	}
	respondJSON(w, http.StatusOK, resp)
}

// TestDiscord handles GET /test-discord by sending a canned notification.
func (h *Handler) TestDiscord(w http.ResponseWriter, r *http.Request) {
	if err := h.relay.SendTest(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, successResponse{Success: true, Message: "Discord test message sent"})
}

// Webhook handles POST /webhook, the Ko-fi event receiver.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, kofi.MaxRequestBodySize)

	event, err := kofi.DecodeRequest(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			h.logger.Warn(ctx, "webhook body too large", "limit", tooLarge.Limit)
			respondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		case errors.Is(err, kofi.ErrNoData):
			h.logger.Warn(ctx, "no data provided in webhook request")
			respondError(w, http.StatusBadRequest, "No data provided")
		case errors.Is(err, kofi.ErrMalformedBody):
			h.logger.Warn(ctx, "malformed webhook request body", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
		default:
			h.logger.Error(ctx, "failed to parse webhook data", "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if err := h.relay.Relay(ctx, event); err != nil {
		if errors.Is(err, usecase.ErrInvalidToken) {
			respondError(w, http.StatusUnauthorized, "Invalid verification token")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, successResponse{Success: true})
}
