package models

// User represents a user row in the local credential store. CreatedAt
// is persisted as an RFC3339 string so records round-trip byte-for-byte.
type User struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	CreatedAt    string `db:"created_at"`
}
