package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store  Store
	assets AssetRemover
	apiKey string
	prod   bool
}

func NewHandler(store Store, assets AssetRemover, apiKey string, prod bool) *Handler {
	return &Handler{store: store, assets: assets, apiKey: apiKey, prod: prod}
}

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
