package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mechbano/site-api/internal/domain"
	"github.com/mechbano/site-api/internal/log"
	"github.com/mechbano/site-api/internal/metrics"
)

// generalOp enumerates every operation the /api/general endpoint serves. The
// (method, type, id) triple is resolved into one constant up front; there is
// no fallthrough between branches.
type generalOp int

const (
	opGeneralUnsupported generalOp = iota
	opVideoList
	opVideoCreate
	opVideoUpdate
	opVideoDelete
	opPDFList
	opPDFCreate
	opPDFUpdate
	opPDFDelete
	opLogoGet
	opLogoSet
	opSiteNameGet
	opSiteNameSet
	opPageList
	opPageSet
)

func resolveGeneralOp(method, typ string, hasID bool) generalOp {
	switch typ {
	case "youtube":
		switch {
		case method == http.MethodGet:
			return opVideoList
		case method == http.MethodPost:
			return opVideoCreate
		case method == http.MethodPut && hasID:
			return opVideoUpdate
		case method == http.MethodDelete && hasID:
			return opVideoDelete
		}
	case "pdf":
		switch {
		case method == http.MethodGet:
			return opPDFList
		case method == http.MethodPost:
			return opPDFCreate
		case method == http.MethodPut && hasID:
			return opPDFUpdate
		case method == http.MethodDelete && hasID:
			return opPDFDelete
		}
	case "logo":
		switch method {
		case http.MethodGet:
			return opLogoGet
		case http.MethodPut:
			return opLogoSet
		}
	case "sitename":
		switch method {
		case http.MethodGet:
			return opSiteNameGet
		case http.MethodPut:
			return opSiteNameSet
		}
	case "pagecontrol":
		switch {
		case method == http.MethodGet:
			return opPageList
		case method == http.MethodPut && hasID:
			return opPageSet
		}
	}
	return opGeneralUnsupported
}

// General serves media links, documents, branding singletons and page flags,
// dispatched on the type query parameter.
func (h *Handler) General(c *gin.Context) {
	if c.Request.Method != http.MethodGet && !h.authed(c) {
		unauthorized(c)
		return
	}

	typ := c.Query("type")
	if typ == "" {
		badRequest(c, "Type is required")
		return
	}
	idStr := c.Query("id")
	var id primitive.ObjectID
	if idStr != "" {
		var err error
		if id, err = primitive.ObjectIDFromHex(idStr); err != nil {
			badRequest(c, "Invalid ID")
			return
		}
	}

	switch resolveGeneralOp(c.Request.Method, typ, idStr != "") {
	case opVideoList:
		h.listVideos(c)
	case opVideoCreate:
		h.createVideo(c)
	case opVideoUpdate:
		h.updateVideo(c, id)
	case opVideoDelete:
		h.deleteVideo(c, id)
	case opPDFList:
		h.listPDFs(c)
	case opPDFCreate:
		h.createPDF(c)
	case opPDFUpdate:
		h.updatePDF(c, id)
	case opPDFDelete:
		h.deletePDF(c, id)
	case opLogoGet:
		h.getLogo(c)
	case opLogoSet:
		h.setLogo(c)
	case opSiteNameGet:
		h.getSiteName(c)
	case opSiteNameSet:
		h.setSiteName(c)
	case opPageList:
		h.listPages(c)
	case opPageSet:
		h.setPageEnabled(c, id)
	default:
		methodNotAllowed(c)
	}
}

type videoReq struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	EmbedLink    string `json:"embedLink"`
	OriginalLink string `json:"originalLink"`
	Category     string `json:"category"`
}

func (h *Handler) listVideos(c *gin.Context) {
	p := pagination(c, 10)
	videos, total, err := h.store.ListVideos(c.Request.Context(), p.skip, p.limit)
	if err != nil {
		h.internalError(c, "list videos", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"videos":     videos,
		"total":      total,
		"page":       p.page,
		"totalPages": totalPages(total, p.limit),
	})
}

func (h *Handler) createVideo(c *gin.Context) {
	var in videoReq
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if in.Title == "" || in.Description == "" || in.EmbedLink == "" || in.OriginalLink == "" || in.Category == "" {
		badRequest(c, "Missing required fields")
		return
	}
	v := &domain.Video{
		Title:        in.Title,
		Description:  in.Description,
		EmbedLink:    in.EmbedLink,
		OriginalLink: in.OriginalLink,
		Category:     in.Category,
	}
	if err := h.store.InsertVideo(c.Request.Context(), v); err != nil {
		h.internalError(c, "insert video", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "YouTube video added", "id": v.ID})
}

func (h *Handler) updateVideo(c *gin.Context, id primitive.ObjectID) {
	var in videoReq
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	matched, err := h.store.UpdateVideo(c.Request.Context(), id, domain.Video{
		Title:        in.Title,
		Description:  in.Description,
		EmbedLink:    in.EmbedLink,
		OriginalLink: in.OriginalLink,
		Category:     in.Category,
	})
	if err != nil {
		h.internalError(c, "update video", err)
		return
	}
	if !matched {
		notFound(c, "Not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated successfully"})
}

func (h *Handler) deleteVideo(c *gin.Context, id primitive.ObjectID) {
	deleted, err := h.store.DeleteVideo(c.Request.Context(), id)
	if err != nil {
		h.internalError(c, "delete video", err)
		return
	}
	if !deleted {
		notFound(c, "Not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}

type pdfReq struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originalLink"`
	Category     string `json:"category"`
}

func (h *Handler) listPDFs(c *gin.Context) {
	p := pagination(c, 10)
	pdfs, total, err := h.store.ListPDFs(c.Request.Context(), p.skip, p.limit)
	if err != nil {
		h.internalError(c, "list pdfs", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pdfs":       pdfs,
		"total":      total,
		"page":       p.page,
		"totalPages": totalPages(total, p.limit),
	})
}

func (h *Handler) createPDF(c *gin.Context) {
	var in pdfReq
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if in.Title == "" || in.OriginalLink == "" || in.Category == "" {
		badRequest(c, "Missing required fields")
		return
	}
	p := &domain.PDF{Title: in.Title, OriginalLink: in.OriginalLink, Category: in.Category}
	if err := h.store.InsertPDF(c.Request.Context(), p); err != nil {
		h.internalError(c, "insert pdf", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "PDF added", "id": p.ID})
}

func (h *Handler) updatePDF(c *gin.Context, id primitive.ObjectID) {
	var in pdfReq
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	matched, err := h.store.UpdatePDF(c.Request.Context(), id, domain.PDF{
		Title:        in.Title,
		OriginalLink: in.OriginalLink,
		Category:     in.Category,
	})
	if err != nil {
		h.internalError(c, "update pdf", err)
		return
	}
	if !matched {
		notFound(c, "PDF not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "PDF updated"})
}

// deletePDF removes the stored object first, best-effort: a malformed URL or a
// storage failure is logged and counted, then the database record is deleted
// regardless.
func (h *Handler) deletePDF(c *gin.Context, id primitive.ObjectID) {
	ctx := c.Request.Context()
	doc, err := h.store.FindPDF(ctx, id)
	if err != nil {
		h.internalError(c, "find pdf", err)
		return
	}
	if doc == nil {
		notFound(c, "PDF not found")
		return
	}

	if h.assets != nil && doc.OriginalLink != "" {
		if err := h.assets.RemoveByURL(ctx, doc.OriginalLink); err != nil {
			metrics.AssetCleanupFailures.Inc()
			log.L.Warn("object storage cleanup failed",
				zap.String("pdf", id.Hex()), zap.Error(err))
		}
	}

	deleted, err := h.store.DeletePDF(ctx, id)
	if err != nil {
		h.internalError(c, "delete pdf", err)
		return
	}
	if !deleted {
		notFound(c, "Failed to delete from DB")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "PDF deleted successfully"})
}

func (h *Handler) getLogo(c *gin.Context) {
	l, err := h.store.GetLogo(c.Request.Context())
	if err != nil {
		h.internalError(c, "get logo", err)
		return
	}
	if l == nil {
		c.JSON(http.StatusOK, gin.H{"url": ""})
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *Handler) setLogo(c *gin.Context) {
	var in struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if in.URL == "" {
		badRequest(c, "URL required")
		return
	}
	if err := h.store.SetLogo(c.Request.Context(), in.URL); err != nil {
		h.internalError(c, "set logo", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logo updated"})
}

func (h *Handler) getSiteName(c *gin.Context) {
	n, err := h.store.GetSiteName(c.Request.Context())
	if err != nil {
		h.internalError(c, "get site name", err)
		return
	}
	if n == nil {
		c.JSON(http.StatusOK, gin.H{"name": "Mechanic Bano"})
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *Handler) setSiteName(c *gin.Context) {
	var in struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if in.Name == "" {
		badRequest(c, "Name required")
		return
	}
	if err := h.store.SetSiteName(c.Request.Context(), in.Name); err != nil {
		h.internalError(c, "set site name", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Site name updated"})
}

func (h *Handler) listPages(c *gin.Context) {
	pages, err := h.store.ListPages(c.Request.Context())
	if err != nil {
		h.internalError(c, "list pages", err)
		return
	}
	c.JSON(http.StatusOK, pages)
}

func (h *Handler) setPageEnabled(c *gin.Context, id primitive.ObjectID) {
	var in struct {
		Enabled *bool `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if in.Enabled == nil {
		badRequest(c, "Enabled status required")
		return
	}
	matched, err := h.store.SetPageEnabled(c.Request.Context(), id, *in.Enabled)
	if err != nil {
		h.internalError(c, "set page enabled", err)
		return
	}
	if !matched {
		notFound(c, "Page not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Page updated"})
}
