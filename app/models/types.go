package models

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// DateLayout is the human date format used for last_updated stamps.
const DateLayout = "January 2 2006"

// PostSummary is the flat record the blog list renders.
type PostSummary struct {
	Title         string `json:"title"`
	Category      string `json:"category"`
	DatePublished string `json:"date_published"`
	// LastUpdated is carried through but not displayed.
	LastUpdated string `json:"last_updated"`
}

// BlogPost is a stored blog entry.
type BlogPost struct {
	ID            int    `json:"id,omitempty" bson:"id"`
	Title         string `json:"title,omitempty" bson:"title,omitempty" validate:"required,max=200"`
	Thumbnail     string `json:"thumbnail,omitempty" bson:"thumbnail,omitempty" validate:"required"`
	Category      string `json:"category,omitempty" bson:"category,omitempty" validate:"required"`
	DatePublished string `json:"date_published,omitempty" bson:"date_published,omitempty" validate:"required"`
	LastUpdated   string `json:"last_updated,omitempty" bson:"last_updated,omitempty" validate:"required"`
	Description   string `json:"description,omitempty" bson:"description,omitempty" validate:"required"`
	Markdown      string `json:"markdown,omitempty" bson:"markdown,omitempty" validate:"required"`
}
