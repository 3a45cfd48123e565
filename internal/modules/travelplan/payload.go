package travelplan

import (
	"math"
	"strings"
	"time"
)

const (
	PromptItinerary = "19e373ea-0b75-47a2-9eae-6f36d2ffd7c8"
	PromptEateries  = "23b99371-a215-4ed5-95a7-898472b1c0ed"
	PromptFaqs      = "70111cfb-c8f2-4adf-b487-fd410b805abc"
)

// Replacements are the template variables shared by every travel prompt.
type Replacements struct {
	Dest      string `json:"dest"`
	Days      int    `json:"days"`
	People    int    `json:"people"`
	Companion string `json:"companion"`
	Type      string `json:"type"`
	Interests string `json:"interests"`
	Budget    string `json:"budget"`
}

// TripDays returns the number of whole days between start and end, rounded to
// the nearest day.
func TripDays(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Hours() / 24))
}

// BuildReplacements maps the form input onto prompt variables.
func BuildReplacements(in TravelFormInput) Replacements {
	return Replacements{
		Dest:      in.Destination,
		Days:      TripDays(in.TravelDates.StartDate, in.TravelDates.EndDate),
		People:    in.NumberOfPeople,
		Companion: in.TravelCompanions,
		Type:      in.TravelType,
		Interests: strings.Join(in.KeyInterests, ", "),
		Budget:    in.Budget,
	}
}
