package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Welcome serves the landing-page banner singleton.
func (h *Handler) Welcome(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet:
		h.getWelcomeNote(c)
	case http.MethodPost, http.MethodPut:
		if !h.authed(c) {
			unauthorized(c)
			return
		}
		h.setWelcomeNote(c)
	default:
		methodNotAllowed(c)
	}
}

func (h *Handler) getWelcomeNote(c *gin.Context) {
	note, err := h.store.GetWelcomeNote(c.Request.Context())
	if err != nil {
		h.internalError(c, "get welcome note", err)
		return
	}
	if note == nil {
		c.JSON(http.StatusOK, gin.H{
			"title":   "Welcome to Mechanic Bano",
			"message": "Your one-stop solution for all mechanical needs",
		})
		return
	}
	c.JSON(http.StatusOK, note)
}

func (h *Handler) setWelcomeNote(c *gin.Context) {
	var in struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		badRequest(c, "Title is required and must be a non-empty string")
		return
	}
	if strings.TrimSpace(in.Message) == "" {
		badRequest(c, "Message is required and must be a non-empty string")
		return
	}

	created, err := h.store.SetWelcomeNote(c.Request.Context(), in.Title, in.Message)
	if err != nil {
		h.internalError(c, "set welcome note", err)
		return
	}
	updated := "modified"
	if created {
		updated = "created"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome note updated successfully",
		"updated": updated,
	})
}
