// README: Travel plan aggregate, provider result types, and error kinds.
package travelplan

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"travelplan/internal/maps"
)

var ErrNotFound = errors.New("travel plan not found")

// TravelDates is the inclusive travel window chosen on the form.
type TravelDates struct {
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required,gtefield=StartDate"`
}

// TravelFormInput is what the user submitted. It is never modified.
type TravelFormInput struct {
	Destination      string      `json:"destination" binding:"required"`
	TravelDates      TravelDates `json:"travelDates" binding:"required"`
	NumberOfPeople   int         `json:"numberOfPeople" binding:"required,min=1"`
	TravelCompanions string      `json:"travelCompanions" binding:"required"`
	TravelType       string      `json:"travelType" binding:"required"`
	KeyInterests     []string    `json:"keyInterests" binding:"required,min=1"`
	Budget           string      `json:"budget" binding:"required"`
}

type Activity struct {
	Time        string `json:"time,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

type ItineraryDay struct {
	document
	Day        int        `json:"day"`
	Title      string     `json:"title,omitempty"`
	Activities []Activity `json:"activities"`
}

// Itinerary is the day-by-day plan returned by the itinerary prompt.
type Itinerary struct {
	Days []ItineraryDay `json:"days"`
}

func (it *Itinerary) Validate() error {
	if len(it.Days) == 0 {
		return errors.New("itinerary has no days")
	}
	return nil
}

type Eatery struct {
	Name        string `json:"name"`
	Cuisine     string `json:"cuisine,omitempty"`
	Description string `json:"description,omitempty"`
	PriceRange  string `json:"priceRange,omitempty"`
	Location    string `json:"location,omitempty"`
}

type Eateries struct {
	document
	Eateries []Eatery `json:"eateries"`
}

func (e *Eateries) Validate() error {
	for _, eatery := range e.Eateries {
		if eatery.Name != "" {
			return nil
		}
	}
	return errors.New("eateries has no named entries")
}

type Faq struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Faqs struct {
	document
	Faqs []Faq `json:"faqs"`
}

func (f *Faqs) Validate() error {
	for _, faq := range f.Faqs {
		if faq.Question != "" && faq.Answer != "" {
			return nil
		}
	}
	return errors.New("faqs has no answered questions")
}

// TravelPlan is the persisted combination of the form input and every generated section.
type TravelPlan struct {
	ID                  uuid.UUID      `json:"uuid"`
	OwnerUID            string         `json:"ownerUid,omitempty"`
	Destination         string         `json:"destination"`
	TravelDates         TravelDates    `json:"travelDates"`
	Budget              string         `json:"budget"`
	TravelType          string         `json:"travelType"`
	KeyInterests        []string       `json:"keyInterests"`
	NumberOfPeople      int            `json:"numberOfPeople"`
	TravelCompanions    string         `json:"travelCompanions"`
	Itinerary           []ItineraryDay `json:"itinerary"`
	Eateries            *Eateries      `json:"eateries"`
	Faqs                *Faqs          `json:"faqs"`
	PopularDestinations []maps.Place   `json:"popularDestinations"`
	CreatedAt           time.Time      `json:"createdAt"`
}

// Kind classifies failures so callers can tell retryable provider trouble from fatal errors.
type Kind uint8

const (
	KindTransport Kind = iota + 1
	KindMalformedResponse
	KindValidation
	KindPersistence
	KindAggregation
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindMalformedResponse:
		return "malformed_response"
	case KindValidation:
		return "validation"
	case KindPersistence:
		return "persistence"
	case KindAggregation:
		return "aggregation"
	default:
		return "unknown"
	}
}

// Retryable reports whether another attempt may succeed.
func (k Kind) Retryable() bool {
	return k == KindTransport || k == KindMalformedResponse || k == KindValidation
}

type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the outermost *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
