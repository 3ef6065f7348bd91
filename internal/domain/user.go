package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription statuses. EndDate is authoritative only while the status is
// active; an expired or cancelled record keeps it for display only.
const (
	SubInactive  = "inactive"
	SubActive    = "active"
	SubExpired   = "expired"
	SubCancelled = "cancelled"
)

type Subscription struct {
	Status      string              `bson:"status" json:"status"`
	StartDate   *time.Time          `bson:"startDate" json:"startDate"`
	EndDate     *time.Time          `bson:"endDate" json:"endDate"`
	PlanID      *primitive.ObjectID `bson:"planId" json:"planId,omitempty"`
	PlanDetails *PlanDetails        `bson:"planDetails,omitempty" json:"planDetails,omitempty"`
	CancelledAt *time.Time          `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
}

// Active reports whether the subscription grants access at the given instant.
// A record whose end date has passed but whose status was never rewritten is
// simply reported inactive; nothing sweeps such records.
func (s Subscription) Active(now time.Time) bool {
	return s.Status == SubActive && s.EndDate != nil && s.EndDate.After(now)
}

// User is keyed by email; uniqueness is only as strong as the find-or-create
// check in the handler.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name" json:"name"`
	Picture      string             `bson:"picture" json:"picture"`
	Subscription Subscription       `bson:"subscription" json:"subscription"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewUser returns the shape inserted on first sign-in.
func NewUser(email, name, picture string, now time.Time) *User {
	return &User{
		Email:   email,
		Name:    name,
		Picture: picture,
		Subscription: Subscription{
			Status: SubInactive,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
