package entity

import "time"

// Review is one user's rating of a bootcamp; (BootcampID, UserID) is unique.
type Review struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Text       string           `json:"text"`
	Rating     int              `json:"rating"`
	BootcampID string           `json:"bootcampId"`
	Bootcamp   *BootcampSummary `json:"bootcamp,omitempty"`
	UserID     string           `json:"user"`
	CreatedAt  time.Time        `json:"createdAt"`
}
