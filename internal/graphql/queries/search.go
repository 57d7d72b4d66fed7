package queries

const SearchTours = `
query SearchTours($filters: SearchFilters, $sort: String, $limit: Int, $offset: Int) {
	searchTours(filters: $filters, sort: $sort, limit: $limit, offset: $offset) {
		tours {` + tourCardFields + `}
		totalCount
		hasMore
	}
}`

const SearchDestinations = `
query SearchDestinations($filters: SearchFilters, $limit: Int, $offset: Int) {
	searchDestinations(filters: $filters, limit: $limit, offset: $offset) {
		destinations {` + destinationCardFields + `}
		totalCount
		hasMore
	}
}`

const SearchFilterOptions = `
query SearchFilterOptions {
	searchFilters {
		continents
		categories
		priceRanges { label min max }
		durations { label minDays maxDays }
		seasons
		features
	}
}`
