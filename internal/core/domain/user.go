package domain

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// ValidRole reports whether role is one of the two known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStudent
}

// User models an account in the users collection. Records are immutable once
// created; there is no update or delete endpoint.
//
// Password is stored, compared and serialized in plaintext. This mirrors the
// contract of the service this one replaces; see the "Known weaknesses"
// section of DESIGN.md before changing it.
type User struct {
	ID       int    `json:"id" bson:"_id"`
	Email    string `json:"email" bson:"email"`
	Password string `json:"password" bson:"password"`
	Role     string `json:"role" bson:"role"`
}

// IsStudent reports whether the user can be enrolled in courses.
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}
