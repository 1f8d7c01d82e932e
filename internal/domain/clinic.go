package domain

import "strings"

// FilterAll is the sentinel accepted by the specialty and neighborhood
// queries; it (or an empty string) disables the filter.
const FilterAll = "all"

type Coords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Clinic is the directory entry patients search for. AverageRating is
// derived from the clinic's review population and is written only through
// the rating aggregator; everything else is profile data owned by the
// clinic operator.
type Clinic struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Specialties   []string `json:"specialties"`
	Address       string   `json:"address"`
	Neighborhood  string   `json:"neighborhood"`
	Phone         string   `json:"phone"`
	WhatsApp      string   `json:"whatsapp"`
	Hours         string   `json:"hours"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	AverageRating float64  `json:"average_rating"`
	Active        bool     `json:"active"`
	Location      *Coords  `json:"location,omitempty"`
}

func (c Clinic) HasSpecialty(specialty string) bool {
	for _, s := range c.Specialties {
		if strings.EqualFold(s, specialty) {
			return true
		}
	}
	return false
}

// ClinicUpdate is a partial update; nil fields are left untouched.
type ClinicUpdate struct {
	Name          *string
	Email         *string
	Specialties   []string
	Address       *string
	Neighborhood  *string
	Phone         *string
	WhatsApp      *string
	Hours         *string
	Description   *string
	Image         *string
	AverageRating *float64
	Location      *Coords
}

// MatchesAll reports whether the given filter value is the "no filter"
// sentinel.
func MatchesAll(filter string) bool {
	return filter == "" || strings.EqualFold(filter, FilterAll)
}
