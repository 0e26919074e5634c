package handler

import (
	"context"
	"net/http"

	"auction-engine/internal/lifecycle"
	"auction-engine/services/bidding/helpers"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=admin_handler.go -destination=mock_sweep_runner.go -package=handler

type SweepRunner interface {
	Sweep(ctx context.Context) (lifecycle.SweepResult, error)
}

type AdminHandler struct {
	sweeper SweepRunner
}

func NewAdminHandler(sweeper SweepRunner) *AdminHandler {
	return &AdminHandler{sweeper: sweeper}
}

// SweepHandler handles POST /admin/sweep
func (h *AdminHandler) SweepHandler(c *gin.Context) {
	res, err := h.sweeper.Sweep(c.Request.Context())
	if err != nil {
		helpers.WriteError(c, "SweepHandler", err, map[string]any{
			"completed": res.Completed,
			"notified":  res.WinnersNotified,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, res, "sweep completed successfully")
	helpers.LogSuccess("SweepHandler", "sweep completed successfully", map[string]any{
		"completed": res.Completed,
		"notified":  res.WinnersNotified,
	})
}
