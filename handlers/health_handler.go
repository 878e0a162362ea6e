package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	diagnoser Diagnoser
}

func NewHealthHandler(diagnoser Diagnoser) *HealthHandler {
	return &HealthHandler{diagnoser: diagnoser}
}

// LivenessCheck handles the liveness probe
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

// DatabaseDiagnostic handles GET /test. It always answers 200; database
// problems are described in the body.
func (h *HealthHandler) DatabaseDiagnostic(c *gin.Context) {
	c.JSON(http.StatusOK, h.diagnoser.Diagnose(c.Request.Context()))
}
