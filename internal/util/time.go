package util

import (
	"time"
)

// ReviewInterval is how far after an analysis the next portfolio review falls
const ReviewInterval = 90 * 24 * time.Hour

// DateOnly truncates t to midnight UTC of its UTC calendar day.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// NextReviewDate returns the calendar date 90 days after asOf, at date precision in UTC.
// It counts calendar days, so DST transitions in the caller's zone never shift the result.
func NextReviewDate(asOf time.Time) time.Time {
	return DateOnly(asOf).AddDate(0, 0, int(ReviewInterval/(24*time.Hour)))
}
