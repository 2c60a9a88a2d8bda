// Package site runs the page-load behaviors of the personal site: the age
// display and the blog list loader.
package site

import (
	"context"
	"time"

	"portfolio/app/age"
	"portfolio/app/loader"
	"portfolio/app/page"
)

// Result reports what happened while a document loaded.
type Result struct {
	Age     int
	Outcome loader.Outcome
	// LoadErr is the fetch failure already alerted on the page, if any.
	LoadErr error
}

// OnLoad runs both behaviors against doc. They do not depend on each other,
// so a missing age element does not stop the blog list from loading. The
// age error is the only error returned.
func OnLoad(ctx context.Context, doc *page.Document, l *loader.Loader, birth, now time.Time) (Result, error) {
	var res Result
	years, ageErr := age.Display(doc, birth, now)
	res.Age = years
	res.Outcome, res.LoadErr = l.Load(ctx, doc)
	return res, ageErr
}
