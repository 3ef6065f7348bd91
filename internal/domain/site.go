package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Logo and SiteName are singleton documents: at most one per collection,
// read via "find any", written via upsert on the empty filter.

type Logo struct {
	ID  primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	URL string             `bson:"url" json:"url"`
}

type SiteName struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name string             `bson:"name" json:"name"`
}

// Page is a named page-visibility flag.
type Page struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Enabled bool               `bson:"enabled" json:"enabled"`
}

// WelcomeNote is the singleton banner shown on the landing page.
type WelcomeNote struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title   string             `bson:"title" json:"title"`
	Message string             `bson:"message" json:"message"`
}
