package rest

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"chat-exchange/domain"
	"chat-exchange/errors"
	"chat-exchange/services"
)

// userHeader carries the caller identity. There is no authentication layer:
// the exchange trusts the header the way the original service did.
const userHeader = "User"

type RegisterParticipantRequest struct {
	Name string `json:"name"`
}

type PostMessageRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
	Kind string `json:"kind"`
}

type ParticipantResponse struct {
	Name     string    `json:"name"`
	LastSeen time.Time `json:"last_seen"`
}

type MessageResponse struct {
	ID   string    `json:"id"`
	From string    `json:"from"`
	To   string    `json:"to"`
	Text string    `json:"text"`
	Kind string    `json:"kind"`
	At   time.Time `json:"at"`
}

type ExchangeHandler struct {
	exchange     services.IExchangeService
	defaultLimit *int
	log          *slog.Logger
}

func NewExchangeHandler(exchange services.IExchangeService, defaultLimit *int, log *slog.Logger) *ExchangeHandler {
	return &ExchangeHandler{
		exchange:     exchange,
		defaultLimit: defaultLimit,
		log:          log.With(slog.String("component", "rest")),
	}
}

func (h *ExchangeHandler) Register(c *gin.Context) {
	var req RegisterParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid registration body", slog.Any("error", err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.exchange.RegisterParticipant(req.Name); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"name": req.Name})
}

func (h *ExchangeHandler) ListParticipants(c *gin.Context) {
	participants, err := h.exchange.ListParticipants()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toParticipantResponses(participants))
}

func (h *ExchangeHandler) Heartbeat(c *gin.Context) {
	if err := h.exchange.Heartbeat(c.GetHeader(userHeader)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (h *ExchangeHandler) PostMessage(c *gin.Context) {
	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid message body", slog.Any("error", err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}

	message, err := h.exchange.PostMessage(c.GetHeader(userHeader), services.PostMessageRequest{
		To:   req.To,
		Text: req.Text,
		Kind: req.Kind,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMessageResponse(message))
}

func (h *ExchangeHandler) ListMessages(c *gin.Context) {
	limit, ok := h.limitFrom(c)
	if !ok {
		return
	}

	messages, err := h.exchange.ListMessages(c.GetHeader(userHeader), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMessageResponses(messages))
}

func (h *ExchangeHandler) SearchMessages(c *gin.Context) {
	limit, ok := h.limitFrom(c)
	if !ok {
		return
	}

	messages, err := h.exchange.SearchMessages(c.Request.Context(),
		c.GetHeader(userHeader), c.Query("q"), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMessageResponses(messages))
}

// limitFrom resolves the result bound: explicit ?limit= wins, otherwise the
// configured default, otherwise unbounded. Replies 422 on a malformed value.
func (h *ExchangeHandler) limitFrom(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		if h.defaultLimit != nil {
			return *h.defaultLimit, true
		}
		return 0, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "limit must be a non-negative integer"})
		return 0, false
	}
	return limit, true
}

func (h *ExchangeHandler) respondError(c *gin.Context, err error) {
	status := errors.MapToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.log.Error("Request failed", slog.String("path", c.FullPath()), slog.Any("error", err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func toParticipantResponses(participants []domain.Participant) []ParticipantResponse {
	return lo.Map(participants, func(item domain.Participant, _ int) ParticipantResponse {
		return ParticipantResponse{Name: item.Name, LastSeen: item.LastSeen}
	})
}

func toMessageResponses(messages []domain.Message) []MessageResponse {
	return lo.Map(messages, func(item domain.Message, _ int) MessageResponse {
		return toMessageResponse(item)
	})
}

func toMessageResponse(message domain.Message) MessageResponse {
	return MessageResponse{
		ID:   message.ID.String(),
		From: message.From,
		To:   message.To,
		Text: message.Text,
		Kind: string(message.Kind),
		At:   message.At,
	}
}
