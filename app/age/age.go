package age

import (
	"errors"
	"strconv"
	"time"

	"portfolio/app/page"
)

// ErrNoTarget is returned when the page has no age element.
var ErrNoTarget = errors.New("age element not found")

// Birthday is the reference birth date shown on the home page.
var Birthday = time.Date(2011, time.March, 15, 0, 0, 0, 0, time.UTC)

// Calculate returns the number of whole years between birth and now.
func Calculate(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// Display writes the age as of now into doc's age element.
func Display(doc *page.Document, birth, now time.Time) (int, error) {
	target := doc.ElementByID(page.AgeID)
	if target == nil {
		return 0, ErrNoTarget
	}
	years := Calculate(birth, now)
	target.SetText(strconv.Itoa(years))
	return years, nil
}
