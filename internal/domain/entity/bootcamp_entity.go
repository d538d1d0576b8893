package entity

import "time"

// Careers enumerates the career tracks a bootcamp can offer.
var Careers = []string{
	"Web Development",
	"Mobile Development",
	"UI/UX",
	"Data Science",
	"Business",
	"Other",
}

func IsCareer(s string) bool {
	for _, c := range Careers {
		if c == s {
			return true
		}
	}
	return false
}

const DefaultPhoto = "no-photo.jpg"

// Location is a geocoded point with its address breakdown.
type Location struct {
	Type             string     `json:"type"`
	Coordinates      [2]float64 `json:"coordinates"` // [longitude, latitude]
	FormattedAddress string     `json:"formattedAddress"`
	Street           string     `json:"street"`
	City             string     `json:"city"`
	State            string     `json:"state"`
	Zipcode          string     `json:"zipcode"`
	Country          string     `json:"country"`
}

func (l Location) Longitude() float64 { return l.Coordinates[0] }
func (l Location) Latitude() float64  { return l.Coordinates[1] }

// Bootcamp is a training provider listed in the directory.
// AverageCost and AverageRating are nil while the bootcamp has no courses or reviews.
type Bootcamp struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Website       string    `json:"website,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Location      Location  `json:"location"`
	Careers       []string  `json:"careers"`
	AverageRating *int      `json:"averageRating,omitempty"`
	AverageCost   *int      `json:"averageCost,omitempty"`
	Photo         string    `json:"photo"`
	Housing       bool      `json:"housing"`
	JobAssistance bool      `json:"jobAssistance"`
	JobGuarantee  bool      `json:"jobGuarantee"`
	AcceptGi      bool      `json:"acceptGi"`
	UserID        string    `json:"user"`
	CreatedAt     time.Time `json:"createdAt"`
	Courses       []Course  `json:"courses,omitempty"`
}

// BootcampSummary is the populated form of a bootcamp reference.
type BootcampSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
