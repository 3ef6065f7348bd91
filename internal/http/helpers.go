package http

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mechbano/site-api/internal/log"
)

// Same single-line shape check as the admin frontend applies: local@domain.tld,
// no further normalization.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(s string) bool { return emailRe.MatchString(s) }

// authed compares the bearer token byte-for-byte against the configured key.
// An unconfigured key rejects everything.
func (h *Handler) authed(c *gin.Context) bool {
	hdr := c.GetHeader("Authorization")
	if !strings.HasPrefix(hdr, "Bearer ") {
		return false
	}
	return h.apiKey != "" && strings.TrimPrefix(hdr, "Bearer ") == h.apiKey
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"message": msg})
}

func methodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Method Not Allowed"})
}

// internalError logs the real cause and hides it from the response in
// production mode.
func (h *Handler) internalError(c *gin.Context, scope string, err error) {
	log.L.Error(scope, zap.Error(err))
	msg := "Internal server error"
	if !h.prod && err != nil {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": msg})
}

type pageParams struct {
	page  int64
	limit int64
	skip  int64
}

// pagination reads page/limit with per-resource defaults. Values below 1 fall
// back to the defaults; no upper bound is enforced on limit.
func pagination(c *gin.Context, defLimit int64) pageParams {
	page := queryInt64(c, "page", 1)
	limit := queryInt64(c, "limit", defLimit)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defLimit
	}
	return pageParams{page: page, limit: limit, skip: (page - 1) * limit}
}

func queryInt64(c *gin.Context, key string, def int64) int64 {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func totalPages(total, limit int64) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
