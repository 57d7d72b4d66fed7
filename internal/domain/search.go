package domain

// SearchFilters is the faceted tour/destination search. Every field is optional and
// independent; nothing cross-checks them (MinPrice > MaxPrice is passed through).
type SearchFilters struct {
	Query       string   `json:"query,omitempty"`
	Continent   string   `json:"continent,omitempty"`
	Country     string   `json:"country,omitempty"`
	Destination string   `json:"destination,omitempty"`
	Category    string   `json:"category,omitempty"`
	MinPrice    *int64   `json:"minPrice,omitempty"`
	MaxPrice    *int64   `json:"maxPrice,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	MinRating   *float64 `json:"minRating,omitempty"`
	Features    []string `json:"features,omitempty"`
	Season      string   `json:"season,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Adults      *int     `json:"adults,omitempty"`
	Children    *int     `json:"children,omitempty"`
}

type SortOrder string

const (
	SortRecommended SortOrder = "recommended"
	SortPriceAsc    SortOrder = "price-low"
	SortPriceDesc   SortOrder = "price-high"
	SortRating      SortOrder = "rating"
	SortDuration    SortOrder = "duration"
	SortNewest      SortOrder = "newest"
)

func (s SortOrder) Valid() bool {
	switch s {
	case SortRecommended, SortPriceAsc, SortPriceDesc, SortRating, SortDuration, SortNewest:
		return true
	}
	return false
}

type Image struct {
	URL     string `json:"url"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

type CountryRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Continent string `json:"continent"`
}

type DestinationRef struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Slug    string     `json:"slug"`
	Country CountryRef `json:"country"`
}

// SearchTour is a read-only projection owned by the travel API.
type SearchTour struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Summary     string         `json:"summary"`
	Price       int64          `json:"price"`
	Duration    int            `json:"duration"`
	Category    string         `json:"category"`
	Rating      float64        `json:"rating"`
	ReviewCount int            `json:"reviewCount"`
	Featured    bool           `json:"featured"`
	Destination DestinationRef `json:"destination"`
	Images      []Image        `json:"images"`
}

type SearchDestination struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Country     CountryRef `json:"country"`
	TourCount   int        `json:"tourCount"`
	Rating      float64    `json:"rating"`
	ReviewCount int        `json:"reviewCount"`
	Gallery     []Image    `json:"gallery"`
}

type PriceBucket struct {
	Label string `json:"label" yaml:"label"`
	Min   int64  `json:"min" yaml:"min"`
	Max   *int64 `json:"max,omitempty" yaml:"max,omitempty"`
}

type DurationBucket struct {
	Label   string `json:"label" yaml:"label"`
	MinDays int    `json:"minDays" yaml:"minDays"`
	MaxDays *int   `json:"maxDays,omitempty" yaml:"maxDays,omitempty"`
}

// Facets are the enumerated values behind the search filter dropdowns.
type Facets struct {
	Continents  []string         `json:"continents" yaml:"continents"`
	Categories  []string         `json:"categories" yaml:"categories"`
	PriceRanges []PriceBucket    `json:"priceRanges" yaml:"priceRanges"`
	Durations   []DurationBucket `json:"durations" yaml:"durations"`
	Seasons     []string         `json:"seasons" yaml:"seasons"`
	Features    []string         `json:"features" yaml:"features"`
}
