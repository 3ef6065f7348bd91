package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video is a curated YouTube reference shown on the site.
type Video struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	EmbedLink    string             `bson:"embedLink" json:"embedLink"`
	OriginalLink string             `bson:"originalLink" json:"originalLink"`
	Category     string             `bson:"category" json:"category"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// PDF is an uploaded document; OriginalLink points at the public object-storage URL.
type PDF struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	OriginalLink string             `bson:"originalLink" json:"originalLink"`
	Category     string             `bson:"category" json:"category"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
