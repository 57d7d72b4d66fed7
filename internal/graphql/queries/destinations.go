package queries

const GetDestinations = `
query GetDestinations($limit: Int, $offset: Int) {
	destinations(limit: $limit, offset: $offset) {` + destinationCardFields + `}
	destinationsCount
}`

const GetDestination = `
query GetDestination($slug: String!) {
	destination(slug: $slug) {` + destinationDetailFields + `}
}`

const CreateDestination = `
mutation CreateDestination($input: DestinationInput!) {
	createDestination(input: $input) {` + destinationDetailFields + `}
}`

const UpdateDestination = `
mutation UpdateDestination($id: ID!, $input: DestinationInput!) {
	updateDestination(id: $id, input: $input) {` + destinationDetailFields + `}
}`

const DeleteDestination = `
mutation DeleteDestination($id: ID!) {
	deleteDestination(id: $id)
}`
