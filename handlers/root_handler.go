package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nadit/nadit-backend/types"
)

const (
	rootMessage  = "Nadit Backend Ready"
	helloMessage = "Hello from Nadit backend API"
)

// RootHandler serves the static banner endpoints.
type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// Root handles GET /
func (h *RootHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, types.MessageResponse{Message: rootMessage})
}

// Hello handles GET /api/hello
func (h *RootHandler) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, types.MessageResponse{Message: helloMessage})
}
