package search

import (
	"net/url"

	"github.com/gin-gonic/gin/binding"
	"github.com/google/go-querystring/query"

	"traveladdicts/internal/domain"
	"traveladdicts/internal/pkg/validator"
)

// Query is the state of the tours page that round-trips through its URL.
type Query struct {
	Filters domain.SearchFilters
	Sort    domain.SortOrder
}

// urlParams maps the shareable search URL. Zero numbers and the recommended sort are
// defaults and never appear in an encoded URL.
type urlParams struct {
	Q           string   `form:"q" url:"q,omitempty"`
	Continent   string   `form:"continent" url:"continent,omitempty"`
	Country     string   `form:"country" url:"country,omitempty"`
	Destination string   `form:"destination" url:"destination,omitempty"`
	Category    string   `form:"category" url:"category,omitempty"`
	MinPrice    *int64   `form:"minPrice" url:"minPrice,omitempty" validate:"omitempty,gte=0"`
	MaxPrice    *int64   `form:"maxPrice" url:"maxPrice,omitempty" validate:"omitempty,gte=0"`
	Duration    string   `form:"duration" url:"duration,omitempty"`
	MinRating   *float64 `form:"minRating" url:"minRating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Features    []string `form:"features" collection_format:"csv" url:"features,comma,omitempty"`
	Season      string   `form:"season" url:"season,omitempty"`
	StartDate   string   `form:"startDate" url:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string   `form:"endDate" url:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Adults      *int     `form:"adults" url:"adults,omitempty" validate:"omitempty,gte=0"`
	Children    *int     `form:"children" url:"children,omitempty" validate:"omitempty,gte=0"`
	Sort        string   `form:"sort" url:"sort,omitempty" validate:"omitempty,oneof=recommended price-low price-high rating duration newest"`
}

// ParseQuery reads search state from URL parameters. Unknown parameters are ignored.
func ParseQuery(values url.Values) (Query, error) {
	var p urlParams
	if err := binding.MapFormWithTag(&p, values, "form"); err != nil {
		return Query{}, &QueryError{Fields: map[string]string{"query": err.Error()}}
	}
	if fields := validator.Validate(p); len(fields) > 0 {
		return Query{}, &QueryError{Fields: fields}
	}

	p.normalize()

	q := Query{
		Filters: domain.SearchFilters{
			Query:       p.Q,
			Continent:   p.Continent,
			Country:     p.Country,
			Destination: p.Destination,
			Category:    p.Category,
			MinPrice:    p.MinPrice,
			MaxPrice:    p.MaxPrice,
			Duration:    p.Duration,
			MinRating:   p.MinRating,
			Features:    p.Features,
			Season:      p.Season,
			StartDate:   p.StartDate,
			EndDate:     p.EndDate,
			Adults:      p.Adults,
			Children:    p.Children,
		},
		Sort: domain.SortRecommended,
	}
	if p.Sort != "" {
		q.Sort = domain.SortOrder(p.Sort)
	}
	return q, nil
}

// EncodeQuery returns exactly the non-default parameters of q.
func EncodeQuery(q Query) url.Values {
	f := q.Filters
	p := urlParams{
		Q:           f.Query,
		Continent:   f.Continent,
		Country:     f.Country,
		Destination: f.Destination,
		Category:    f.Category,
		MinPrice:    f.MinPrice,
		MaxPrice:    f.MaxPrice,
		Duration:    f.Duration,
		MinRating:   f.MinRating,
		Features:    f.Features,
		Season:      f.Season,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		Adults:      f.Adults,
		Children:    f.Children,
		Sort:        string(q.Sort),
	}
	p.normalize()

	values, err := query.Values(p)
	if err != nil {
		// urlParams only holds strings, numbers and string slices
		return url.Values{}
	}
	return values
}

func (p *urlParams) normalize() {
	if p.MinPrice != nil && *p.MinPrice == 0 {
		p.MinPrice = nil
	}
	if p.MaxPrice != nil && *p.MaxPrice == 0 {
		p.MaxPrice = nil
	}
	if p.MinRating != nil && *p.MinRating == 0 {
		p.MinRating = nil
	}
	if p.Adults != nil && *p.Adults == 0 {
		p.Adults = nil
	}
	if p.Children != nil && *p.Children == 0 {
		p.Children = nil
	}

	features := p.Features[:0:0]
	for _, feat := range p.Features {
		if feat != "" {
			features = append(features, feat)
		}
	}
	if len(features) == 0 {
		features = nil
	}
	p.Features = features

	if p.Sort == string(domain.SortRecommended) {
		p.Sort = ""
	}
}
