package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mechbano/site-api/internal/domain"
)

type userOp int

const (
	opUserUnsupported userOp = iota
	opUserCreate
	opUserList
	opUserDelete
	opUserUpdate
	opUserSubscribe
)

func resolveUserOp(method, typ string) userOp {
	switch method {
	case http.MethodPost:
		return opUserCreate
	case http.MethodGet:
		return opUserList
	case http.MethodDelete:
		return opUserDelete
	case http.MethodPut:
		if typ == "update" {
			return opUserUpdate
		}
		return opUserSubscribe
	}
	return opUserUnsupported
}

// Users handles sign-in upserts, the admin listing and subscription
// activation. Every operation here is key-gated, the bulk GET included.
func (h *Handler) Users(c *gin.Context) {
	if !h.authed(c) {
		unauthorized(c)
		return
	}

	op := resolveUserOp(c.Request.Method, c.Query("type"))
	switch op {
	case opUserCreate:
		h.createUser(c)
	case opUserList:
		h.listUsers(c)
	case opUserDelete, opUserUpdate, opUserSubscribe:
		email := c.Query("email")
		if email == "" {
			badRequest(c, "Email parameter is required")
			return
		}
		if !validEmail(email) {
			badRequest(c, "Invalid email format")
			return
		}
		switch op {
		case opUserDelete:
			h.deleteUser(c, email)
		case opUserUpdate:
			h.updateUserProfile(c, email)
		case opUserSubscribe:
			h.activateSubscription(c, email)
		}
	default:
		methodNotAllowed(c)
	}
}

type createUserReq struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// createUser is find-or-create by email. An existing user is returned as a
// reduced projection with no mutation; races between two first sign-ins are
// not guarded beyond this check.
func (h *Handler) createUser(c *gin.Context) {
	var in createUserReq
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if in.Email == "" || in.Name == "" {
		badRequest(c, "Email and Name are required.")
		return
	}
	if !validEmail(in.Email) {
		badRequest(c, "Invalid email format")
		return
	}

	ctx := c.Request.Context()
	existing, err := h.store.FindUserByEmail(ctx, in.Email)
	if err != nil {
		h.internalError(c, "find user", err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusOK, gin.H{
			"name":         existing.Name,
			"email":        existing.Email,
			"picture":      existing.Picture,
			"subscription": existing.Subscription,
		})
		return
	}

	u := domain.NewUser(in.Email, in.Name, in.Picture, time.Now().UTC())
	if err := h.store.CreateUser(ctx, u); err != nil {
		h.internalError(c, "create user", err)
		return
	}
	// the Mongo id stays internal; domain.User marshals without it
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    u,
	})
}

func (h *Handler) listUsers(c *gin.Context) {
	p := pagination(c, 20)
	users, total, err := h.store.ListUsers(c.Request.Context(), c.Query("search"), p.skip, p.limit)
	if err != nil {
		h.internalError(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users":      users,
		"total":      total,
		"page":       p.page,
		"totalPages": totalPages(total, p.limit),
	})
}

func (h *Handler) deleteUser(c *gin.Context, email string) {
	deleted, err := h.store.DeleteUserByEmail(c.Request.Context(), email)
	if err != nil {
		h.internalError(c, "delete user", err)
		return
	}
	if !deleted {
		notFound(c, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *Handler) updateUserProfile(c *gin.Context, email string) {
	var in struct {
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if in.Name == "" {
		badRequest(c, "Name is required for update")
		return
	}
	matched, err := h.store.UpdateUserProfile(c.Request.Context(), email, in.Name, in.Picture)
	if err != nil {
		h.internalError(c, "update user profile", err)
		return
	}
	if !matched {
		notFound(c, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User profile updated successfully"})
}

// activateSubscription validates the plan reference, snapshots the plan's
// pricing into the user document and stamps the period. It never creates the
// user: an unknown email is a 404.
func (h *Handler) activateSubscription(c *gin.Context, email string) {
	var in struct {
		PlanID string `json:"planId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if in.PlanID == "" {
		badRequest(c, "Plan ID is required")
		return
	}
	planID, err := primitive.ObjectIDFromHex(in.PlanID)
	if err != nil {
		badRequest(c, "Invalid Plan ID format")
		return
	}

	ctx := c.Request.Context()
	plan, err := h.store.FindPlan(ctx, planID)
	if err != nil {
		h.internalError(c, "find plan", err)
		return
	}
	if plan == nil {
		notFound(c, "Subscription plan not found")
		return
	}

	start := time.Now().UTC()
	end := start.AddDate(0, 0, plan.Days)
	matched, err := h.store.ActivateSubscription(ctx, email, domain.Subscription{
		Status:    domain.SubActive,
		StartDate: &start,
		EndDate:   &end,
		PlanID:    &plan.ID,
		PlanDetails: &domain.PlanDetails{
			Title:    plan.Title,
			Price:    plan.Price,
			Days:     plan.Days,
			Discount: plan.Discount,
		},
	})
	if err != nil {
		h.internalError(c, "activate subscription", err)
		return
	}
	if !matched {
		notFound(c, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Subscription activated successfully",
		"endDate": end,
	})
}
