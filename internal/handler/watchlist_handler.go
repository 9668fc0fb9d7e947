package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Falmousl/Finance-Project/internal/model"
	"github.com/gin-gonic/gin"
)

type WatchlistStore interface {
	List(ctx context.Context, username string) ([]model.WatchlistItem, error)
	Add(ctx context.Context, username, ticker string) error
	Remove(ctx context.Context, username, ticker string) error
	Ping(ctx context.Context) error
}

type WatchlistHandler struct {
	repository WatchlistStore
}

func NewWatchlistHandler(repository WatchlistStore) *WatchlistHandler {
	return &WatchlistHandler{repository: repository}
}

func (h *WatchlistHandler) GetWatchlist(c *gin.Context) {
	username := c.GetString(usernameKey)

	items, err := h.repository.List(c.Request.Context(), username)
	if err != nil {
		slog.Error("error fetching watchlist", "username", username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, toWatchlistResponse(items))
}

func (h *WatchlistHandler) AddItem(c *gin.Context) {
	var req InvestmentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ticker := strings.TrimSpace(req.InvestmentID)
	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "investment_id is required"})
		return
	}

	username := c.GetString(usernameKey)
	if err := h.repository.Add(c.Request.Context(), username, ticker); err != nil {
		slog.Error("error adding watchlist item", "username", username, "ticker", ticker, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// RemoveItem takes the ticker from the path, or from the body on the legacy
// POST route.
func (h *WatchlistHandler) RemoveItem(c *gin.Context) {
	ticker := strings.TrimSpace(c.Param("ticker"))
	if ticker == "" {
		var req InvestmentRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		ticker = strings.TrimSpace(req.InvestmentID)
	}
	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "investment_id is required"})
		return
	}

	username := c.GetString(usernameKey)
	if err := h.repository.Remove(c.Request.Context(), username, ticker); err != nil {
		slog.Error("error removing watchlist item", "username", username, "ticker", ticker, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *WatchlistHandler) GetHealth(c *gin.Context) {
	if err := h.repository.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
