package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Falmousl/Finance-Project/internal/model"
	"github.com/gin-gonic/gin"
)

type SnapshotAssembler interface {
	Assemble(ctx context.Context, ticker string) (*model.Snapshot, error)
}

type SnapshotHandler struct {
	assembler SnapshotAssembler
}

func NewSnapshotHandler(assembler SnapshotAssembler) *SnapshotHandler {
	return &SnapshotHandler{assembler: assembler}
}

func (h *SnapshotHandler) GetSnapshot(c *gin.Context) {
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

	snap, err := h.assembler.Assemble(c.Request.Context(), ticker)
	if err != nil {
		status, msg := statusFor(err)
		if status == http.StatusInternalServerError {
			msg = "Internal error"
		}
		slog.Error("error assembling snapshot", "ticker", ticker, "status", status, "error", err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, ToSnapshotResponse(snap))
}
