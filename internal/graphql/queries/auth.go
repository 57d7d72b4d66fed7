package queries

const AdminLogin = `
mutation AdminLogin($email: String!, $password: String!) {
	adminLogin(email: $email, password: $password) {
		token
		user { id email name role }
	}
}`

const AdminMe = `
query AdminMe {
	me { id email name role }
}`
