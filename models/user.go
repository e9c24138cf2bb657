package models

// GoogleOAuthPassword is the sentinel stored in place of a password hash for
// accounts created through Google sign-in. It is not a valid bcrypt hash, so
// the password login path can never succeed for these accounts.
const GoogleOAuthPassword = "google_oauth"

type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}
