package types

// AuthUser is the authenticated identity resolved by the auth middleware and
// stored in the request context.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
