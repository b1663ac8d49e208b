package model

// User is the caller identified by a verified access token. ID is the token's
// "sub" claim.
type User struct {
	ID    string
	Email string
	Role  string
}
