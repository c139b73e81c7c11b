package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quote is a motivational quote shown on the dashboards.
type Quote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Text      string             `bson:"text" json:"text"`
	Author    string             `bson:"author,omitempty" json:"author,omitempty"`
	Category  string             `bson:"category,omitempty" json:"category,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// QuoteFilter is the optional GET filter set; Text and Author are matched
// as case-insensitive regular expressions.
type QuoteFilter struct {
	ID     string
	Text   string
	Author string
}
