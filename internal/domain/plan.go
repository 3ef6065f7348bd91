package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Plan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Price     float64            `bson:"price" json:"price"`
	Days      int                `bson:"days" json:"days"`
	Discount  float64            `bson:"discount,omitempty" json:"discount,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// PlanDetails is the pricing snapshot embedded into a user's subscription at
// activation time, so later plan edits do not rewrite history.
type PlanDetails struct {
	Title    string  `bson:"title" json:"title"`
	Price    float64 `bson:"price" json:"price"`
	Days     int     `bson:"days" json:"days"`
	Discount float64 `bson:"discount" json:"discount"`
}
