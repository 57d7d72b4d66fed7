// Package queries holds every GraphQL operation the service sends to the travel API.
package queries

const tourCardFields = `
	id
	title
	slug
	summary
	price
	duration
	category
	rating
	reviewCount
	featured
	destination {
		id
		name
		slug
		country { id name continent }
	}
	images { url alt caption }
`

const tourDetailFields = tourCardFields + `
	description
	highlights
	inclusions
	exclusions
	features
	seasons
	groupSize
	difficulty
	status
	createdAt
	updatedAt
`

const destinationCardFields = `
	id
	name
	slug
	description
	tourCount
	rating
	reviewCount
	country { id name continent }
	gallery { url alt caption }
`

const destinationDetailFields = destinationCardFields + `
	highlights
	bestTimeToVisit
	climate
	featured
	createdAt
	updatedAt
`

const bookingFields = `
	id
	bookingReference
	status
	paymentStatus
	totalPrice
	paidAmount
	currency
	startDate
	endDate
	adults
	children
	specialRequests
	cancellationReason
	createdAt
	updatedAt
	customer { id name email phone country }
	tour { id title slug }
`

const mediaFields = `
	id
	url
	publicId
	filename
	mimeType
	size
	width
	height
	alt
	caption
	category
	tags
	createdAt
`

const pricingFields = `
	id
	season
	startDate
	endDate
	adultPrice
	childPrice
	available
`

const itineraryFields = `
	day
	title
	description
	activities
	meals
	accommodation
`
