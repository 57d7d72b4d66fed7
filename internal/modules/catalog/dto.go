package catalog

import "traveladdicts/internal/domain"

type TourList struct {
	Items []domain.SearchTour `json:"items"`
	Total int                 `json:"total"`
}

type DestinationList struct {
	Items []domain.SearchDestination `json:"items"`
	Total int                        `json:"total"`
}

type UpdatePricingRequest struct {
	Tiers []domain.PriceTier `json:"tiers" binding:"required"`
}

type UpdateItineraryRequest struct {
	Days []domain.ItineraryDay `json:"days" binding:"required"`
}
