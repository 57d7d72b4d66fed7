package queries

const GetMedia = `
query GetMedia($limit: Int, $offset: Int, $category: String) {
	media(limit: $limit, offset: $offset, category: $category) {` + mediaFields + `}
	mediaCount(category: $category)
}`

const CreateMedia = `
mutation CreateMedia($input: MediaInput!) {
	createMedia(input: $input) {` + mediaFields + `}
}`

const DeleteMedia = `
mutation DeleteMedia($id: ID!) {
	deleteMedia(id: $id)
}`
