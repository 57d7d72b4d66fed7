package queries

const GetTours = `
query GetTours($limit: Int, $offset: Int) {
	tours(limit: $limit, offset: $offset) {` + tourCardFields + `}
	toursCount
}`

const GetTour = `
query GetTour($slug: String!) {
	tour(slug: $slug) {` + tourDetailFields + `}
}`

const FeaturedTours = `
query FeaturedTours($limit: Int) {
	featuredTours(limit: $limit) {` + tourCardFields + `}
}`

const CreateTour = `
mutation CreateTour($input: TourInput!) {
	createTour(input: $input) {` + tourDetailFields + `}
}`

const UpdateTour = `
mutation UpdateTour($id: ID!, $input: TourInput!) {
	updateTour(id: $id, input: $input) {` + tourDetailFields + `}
}`

const DeleteTour = `
mutation DeleteTour($id: ID!) {
	deleteTour(id: $id)
}`

const GetTourPricing = `
query GetTourPricing($tourId: ID!) {
	tourPricing(tourId: $tourId) {` + pricingFields + `}
}`

const UpdateTourPricing = `
mutation UpdateTourPricing($tourId: ID!, $tiers: [PriceTierInput!]!) {
	updateTourPricing(tourId: $tourId, tiers: $tiers) {` + pricingFields + `}
}`

const GetTourItinerary = `
query GetTourItinerary($tourId: ID!) {
	tourItinerary(tourId: $tourId) {` + itineraryFields + `}
}`

const UpdateTourItinerary = `
mutation UpdateTourItinerary($tourId: ID!, $days: [ItineraryDayInput!]!) {
	updateTourItinerary(tourId: $tourId, days: $days) {` + itineraryFields + `}
}`
