package domain

import "time"

type ItineraryDay struct {
	Day           int      `json:"day"`
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description"`
	Activities    []string `json:"activities,omitempty"`
	Meals         []string `json:"meals,omitempty"`
	Accommodation string   `json:"accommodation,omitempty"`
}

// PriceTier prices one season of a tour, per adult and per child, in USD cents.
type PriceTier struct {
	ID         string `json:"id,omitempty"`
	Season     string `json:"season" validate:"required"`
	StartDate  string `json:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
	AdultPrice int64  `json:"adultPrice" validate:"gte=0"`
	ChildPrice int64  `json:"childPrice" validate:"gte=0"`
	Available  bool   `json:"available"`
}

type Tour struct {
	SearchTour
	Description string         `json:"description"`
	Highlights  []string       `json:"highlights,omitempty"`
	Inclusions  []string       `json:"inclusions,omitempty"`
	Exclusions  []string       `json:"exclusions,omitempty"`
	Features    []string       `json:"features,omitempty"`
	Seasons     []string       `json:"seasons,omitempty"`
	GroupSize   int            `json:"groupSize"`
	Difficulty  string         `json:"difficulty,omitempty"`
	Status      string         `json:"status,omitempty"`
	Itinerary   []ItineraryDay `json:"itinerary,omitempty"`
	Pricing     []PriceTier    `json:"pricing,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type Destination struct {
	SearchDestination
	Highlights []string  `json:"highlights,omitempty"`
	BestTime   string    `json:"bestTimeToVisit,omitempty"`
	Climate    string    `json:"climate,omitempty"`
	Featured   bool      `json:"featured"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TourInput is the admin editor payload for create/update.
type TourInput struct {
	Title         string   `json:"title" validate:"required,max=200"`
	Slug          string   `json:"slug" validate:"omitempty,max=200"`
	Summary       string   `json:"summary" validate:"max=500"`
	Description   string   `json:"description"`
	Price         int64    `json:"price" validate:"gte=0"`
	Duration      int      `json:"duration" validate:"gte=1"`
	GroupSize     int      `json:"groupSize" validate:"gte=0"`
	Category      string   `json:"category" validate:"required"`
	Difficulty    string   `json:"difficulty"`
	DestinationID string   `json:"destinationId" validate:"required"`
	Features      []string `json:"features"`
	Seasons       []string `json:"seasons"`
	Highlights    []string `json:"highlights"`
	Inclusions    []string `json:"inclusions"`
	Exclusions    []string `json:"exclusions"`
	Featured      bool     `json:"featured"`
	Status        string   `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	Images        []Image  `json:"images"`
}

type DestinationInput struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Slug        string   `json:"slug" validate:"omitempty,max=200"`
	Description string   `json:"description"`
	CountryID   string   `json:"countryId" validate:"required"`
	Highlights  []string `json:"highlights"`
	BestTime    string   `json:"bestTimeToVisit"`
	Climate     string   `json:"climate"`
	Featured    bool     `json:"featured"`
	Gallery     []Image  `json:"gallery"`
}
