package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoUpdates is returned when an edit payload carries no usable field.
	ErrNoUpdates = errors.New("no updates provided")
	// ErrInvalidPost wraps validation failures.
	ErrInvalidPost = errors.New("missing required blog fields")
)

// EditableFields lists the JSON fields an edit may change.
var EditableFields = map[string]bool{
	"title":          true,
	"thumbnail":      true,
	"category":       true,
	"date_published": true,
	"last_updated":   true,
	"description":    true,
	"markdown":       true,
}

// Validate checks that every content field is present
func (p *BlogPost) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPost, err)
	}
	return nil
}

// Summary projects the post down to what the blog list shows
func (p *BlogPost) Summary() PostSummary {
	return PostSummary{
		Title:         p.Title,
		Category:      p.Category,
		DatePublished: p.DatePublished,
		LastUpdated:   p.LastUpdated,
	}
}

// Apply copies whitelisted fields from updates onto the post. Empty strings
// and non-string values are skipped so a sparse payload never wipes a field.
// A markdown change restamps LastUpdated with now. It returns the names of
// the fields that were set.
func (p *BlogPost) Apply(updates map[string]any, now time.Time) ([]string, error) {
	var applied []string
	for k, v := range updates {
		if !EditableFields[k] {
			continue
		}
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		p.setField(k, s)
		applied = append(applied, k)
	}
	if len(applied) == 0 {
		return nil, ErrNoUpdates
	}
	if contains(applied, "markdown") {
		p.LastUpdated = now.Format(DateLayout)
		if !contains(applied, "last_updated") {
			applied = append(applied, "last_updated")
		}
	}
	return applied, nil
}

func (p *BlogPost) setField(name, value string) {
	switch name {
	case "title":
		p.Title = value
	case "thumbnail":
		p.Thumbnail = value
	case "category":
		p.Category = value
	case "date_published":
		p.DatePublished = value
	case "last_updated":
		p.LastUpdated = value
	case "description":
		p.Description = value
	case "markdown":
		p.Markdown = value
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// FallbackPosts returns the sample list shown when the blog API cannot
// supply anything usable.
func FallbackPosts() []PostSummary {
	return []PostSummary{
		{
			Title:         "Sample Blog Post",
			Category:      "education",
			DatePublished: "October 28 2025",
			LastUpdated:   "October 28 2025",
		},
		{
			Title:         "Using Markdown in Blog",
			Category:      "Development",
			DatePublished: "2025-10-28",
			LastUpdated:   "2025-10-28",
		},
	}
}
