package search

import "traveladdicts/internal/domain"

// Canned results shown while the travel API is unreachable in development.

func FallbackTours() []domain.SearchTour {
	tanzania := domain.CountryRef{ID: "c-tz", Name: "Tanzania", Continent: "Africa"}
	uganda := domain.CountryRef{ID: "c-ug", Name: "Uganda", Continent: "Africa"}
	japan := domain.CountryRef{ID: "c-jp", Name: "Japan", Continent: "Asia"}

	return []domain.SearchTour{
		{
			ID:          "fallback-serengeti-safari",
			Title:       "Serengeti Migration Safari",
			Slug:        "serengeti-migration-safari",
			Summary:     "Seven days following the great migration across the Serengeti plains.",
			Price:       245000,
			Duration:    7,
			Category:    "Wildlife",
			Rating:      4.9,
			ReviewCount: 128,
			Featured:    true,
			Destination: domain.DestinationRef{ID: "d-serengeti", Name: "Serengeti", Slug: "serengeti", Country: tanzania},
			Images:      []domain.Image{{URL: "/images/tours/serengeti.jpg", Alt: "Wildebeest crossing the Mara river"}},
		},
		{
			ID:          "fallback-zanzibar-escape",
			Title:       "Zanzibar Beach Escape",
			Slug:        "zanzibar-beach-escape",
			Summary:     "Spice tours, Stone Town and five nights on the east coast beaches.",
			Price:       129900,
			Duration:    6,
			Category:    "Beach",
			Rating:      4.7,
			ReviewCount: 86,
			Destination: domain.DestinationRef{ID: "d-zanzibar", Name: "Zanzibar", Slug: "zanzibar", Country: tanzania},
			Images:      []domain.Image{{URL: "/images/tours/zanzibar.jpg", Alt: "Dhow on turquoise water"}},
		},
		{
			ID:          "fallback-gorilla-trek",
			Title:       "Bwindi Gorilla Trek",
			Slug:        "bwindi-gorilla-trek",
			Summary:     "Track mountain gorillas through Bwindi Impenetrable Forest.",
			Price:       310000,
			Duration:    4,
			Category:    "Adventure",
			Rating:      4.8,
			ReviewCount: 64,
			Featured:    true,
			Destination: domain.DestinationRef{ID: "d-bwindi", Name: "Bwindi", Slug: "bwindi", Country: uganda},
			Images:      []domain.Image{{URL: "/images/tours/bwindi.jpg", Alt: "Silverback gorilla in the forest"}},
		},
		{
			ID:          "fallback-kyoto-culture",
			Title:       "Kyoto Temples and Tea",
			Slug:        "kyoto-temples-and-tea",
			Summary:     "Temples, tea ceremonies and the lantern-lit streets of Gion.",
			Price:       189000,
			Duration:    9,
			Category:    "Cultural",
			Rating:      4.6,
			ReviewCount: 52,
			Destination: domain.DestinationRef{ID: "d-kyoto", Name: "Kyoto", Slug: "kyoto", Country: japan},
			Images:      []domain.Image{{URL: "/images/tours/kyoto.jpg", Alt: "Fushimi Inari torii gates"}},
		},
	}
}

func FallbackDestinations() []domain.SearchDestination {
	return []domain.SearchDestination{
		{
			ID:          "fallback-serengeti",
			Name:        "Serengeti",
			Slug:        "serengeti",
			Description: "Endless plains and the largest land migration on earth.",
			Country:     domain.CountryRef{ID: "c-tz", Name: "Tanzania", Continent: "Africa"},
			TourCount:   6,
			Rating:      4.9,
			ReviewCount: 210,
			Gallery:     []domain.Image{{URL: "/images/destinations/serengeti.jpg", Alt: "Acacia at sunset"}},
		},
		{
			ID:          "fallback-zanzibar",
			Name:        "Zanzibar",
			Slug:        "zanzibar",
			Description: "White sand, spice farms and the old town of Stone Town.",
			Country:     domain.CountryRef{ID: "c-tz", Name: "Tanzania", Continent: "Africa"},
			TourCount:   4,
			Rating:      4.7,
			ReviewCount: 143,
			Gallery:     []domain.Image{{URL: "/images/destinations/zanzibar.jpg", Alt: "Nungwi beach"}},
		},
		{
			ID:          "fallback-kyoto",
			Name:        "Kyoto",
			Slug:        "kyoto",
			Description: "Japan's old capital of temples, gardens and geisha districts.",
			Country:     domain.CountryRef{ID: "c-jp", Name: "Japan", Continent: "Asia"},
			TourCount:   3,
			Rating:      4.6,
			ReviewCount: 97,
			Gallery:     []domain.Image{{URL: "/images/destinations/kyoto.jpg", Alt: "Kinkaku-ji in autumn"}},
		},
	}
}
