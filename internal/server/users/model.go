package users

// User is a registered account. Username is the identity key. Password
// holds the bcrypt hash, never the plaintext. Token is the single current
// session token; nil means logged out.
type User struct {
	Username string
	Name     string
	Password string
	Token    *string
}
