package models

// Profile is the single row of profile data kept per user. Saving a profile
// replaces the whole row; fields left out of a save come back empty.
type Profile struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"user_id"`
	Phone          string  `json:"phone"`
	DOB            string  `json:"dob"`
	Education      string  `json:"education"`
	University     string  `json:"university"`
	GraduationYear string  `json:"graduation_year"`
	CurrentStatus  string  `json:"current_status"`
	CurrentRole    string  `json:"current_role"`
	Skills         string  `json:"skills"`
	Interests      string  `json:"interests"`
	Linkedin       string  `json:"linkedin"`
	Github         string  `json:"github"`
	Bio            string  `json:"bio"`
	Photo          *string `json:"photo"`
}
