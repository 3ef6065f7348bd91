package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mechbano/site-api/internal/domain"
	"github.com/mechbano/site-api/internal/log"
)

type subscriptionOp int

const (
	opSubscriptionUnsupported subscriptionOp = iota
	opPlanList
	opPlanCreate
	opPlanUpdate
	opPlanDelete
	opSubCheck
	opSubExpire
)

func resolveSubscriptionOp(method, typ string) subscriptionOp {
	switch typ {
	case "":
		switch method {
		case http.MethodGet:
			return opPlanList
		case http.MethodPost:
			return opPlanCreate
		case http.MethodPut:
			return opPlanUpdate
		case http.MethodDelete:
			return opPlanDelete
		}
	case "check":
		if method == http.MethodGet {
			return opSubCheck
		}
	case "expire":
		if method == http.MethodPut {
			return opSubExpire
		}
	}
	return opSubscriptionUnsupported
}

// Subscription serves the plan catalogue and per-user subscription state.
func (h *Handler) Subscription(c *gin.Context) {
	if c.Request.Method != http.MethodGet && !h.authed(c) {
		unauthorized(c)
		return
	}

	switch resolveSubscriptionOp(c.Request.Method, c.Query("type")) {
	case opPlanList:
		h.listPlans(c)
	case opPlanCreate:
		h.createPlan(c)
	case opPlanUpdate:
		h.updatePlan(c)
	case opPlanDelete:
		h.deletePlan(c)
	case opSubCheck:
		h.checkSubscription(c)
	case opSubExpire:
		h.expireSubscription(c)
	default:
		methodNotAllowed(c)
	}
}

type planReq struct {
	Title    string   `json:"title"`
	Price    float64  `json:"price"`
	Days     int      `json:"days"`
	Discount *float64 `json:"discount"`
}

// validatePlan returns an empty string when the payload is acceptable.
func validatePlan(in planReq) string {
	if in.Title == "" || in.Price == 0 || in.Days == 0 {
		return "Missing required fields"
	}
	if in.Price <= 0 {
		return "Price must be a positive number"
	}
	if in.Days <= 0 {
		return "Days must be a positive integer"
	}
	if in.Discount != nil && (*in.Discount < 0 || *in.Discount > 100) {
		return "Discount must be between 0 and 100"
	}
	return ""
}

func (h *Handler) listPlans(c *gin.Context) {
	p := pagination(c, 10)
	plans, total, err := h.store.ListPlans(c.Request.Context(), p.skip, p.limit)
	if err != nil {
		h.internalError(c, "list plans", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"plans":      plans,
		"total":      total,
		"page":       p.page,
		"totalPages": totalPages(total, p.limit),
	})
}

func (h *Handler) createPlan(c *gin.Context) {
	var in planReq
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if msg := validatePlan(in); msg != "" {
		badRequest(c, msg)
		return
	}
	p := &domain.Plan{Title: in.Title, Price: in.Price, Days: in.Days}
	if in.Discount != nil {
		p.Discount = *in.Discount
	}
	if err := h.store.InsertPlan(c.Request.Context(), p); err != nil {
		h.internalError(c, "insert plan", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Plan created successfully", "id": p.ID})
}

func (h *Handler) updatePlan(c *gin.Context) {
	id, ok := h.requirePlanID(c)
	if !ok {
		return
	}
	var in planReq
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if msg := validatePlan(in); msg != "" {
		badRequest(c, msg)
		return
	}
	p := domain.Plan{Title: in.Title, Price: in.Price, Days: in.Days}
	if in.Discount != nil {
		p.Discount = *in.Discount
	}
	matched, err := h.store.UpdatePlan(c.Request.Context(), id, p)
	if err != nil {
		h.internalError(c, "update plan", err)
		return
	}
	if !matched {
		notFound(c, "Plan not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan updated successfully"})
}

// deletePlan removes the plan, then cancels every subscription referencing it.
// The two writes are independent; an error between them leaves users pointing
// at a plan that no longer exists.
func (h *Handler) deletePlan(c *gin.Context) {
	id, ok := h.requirePlanID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	deleted, err := h.store.DeletePlan(ctx, id)
	if err != nil {
		h.internalError(c, "delete plan", err)
		return
	}
	if !deleted {
		notFound(c, "Plan not found")
		return
	}

	n, err := h.store.CancelSubscriptionsByPlan(ctx, id, time.Now().UTC())
	if err != nil {
		h.internalError(c, "cancel subscriptions for deleted plan", err)
		return
	}
	if n > 0 {
		log.L.Info("cancelled subscriptions for deleted plan",
			zap.String("plan", id.Hex()), zap.Int64("users", n))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted successfully"})
}

func (h *Handler) requirePlanID(c *gin.Context) (primitive.ObjectID, bool) {
	idStr := c.Query("id")
	if idStr == "" {
		badRequest(c, "Plan ID is required")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		badRequest(c, "Invalid ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// checkSubscription reports whether the user is currently subscribed. A record
// whose end date has passed while the status still says active is reported as
// not subscribed without being rewritten; there is no background sweep.
func (h *Handler) checkSubscription(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		badRequest(c, "Email is required")
		return
	}
	if !validEmail(email) {
		badRequest(c, "Invalid email format")
		return
	}
	u, err := h.store.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		h.internalError(c, "find user", err)
		return
	}
	if u == nil {
		notFound(c, "User not found")
		return
	}
	var endDate any
	if u.Subscription.EndDate != nil {
		endDate = u.Subscription.EndDate
	}
	c.JSON(http.StatusOK, gin.H{
		"isSubscribed": u.Subscription.Active(time.Now()),
		"endDate":      endDate,
	})
}

func (h *Handler) expireSubscription(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		badRequest(c, "Email is required")
		return
	}
	if !validEmail(email) {
		badRequest(c, "Invalid email format")
		return
	}
	matched, err := h.store.ExpireSubscription(c.Request.Context(), email, time.Now().UTC())
	if err != nil {
		h.internalError(c, "expire subscription", err)
		return
	}
	if !matched {
		notFound(c, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription expired successfully"})
}
