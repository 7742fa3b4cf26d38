package domain

import (
	"errors"
	"time"
)

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleInstructor || role == RoleAdmin
}

var ErrUserNotFound = errors.New("user not found")
var ErrEmailExists = errors.New("user with this email already exists")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrSelfDeletion = errors.New("you cannot delete your own account")
var ErrForbidden = errors.New("access forbidden")
var ErrCourseInCart = errors.New("course already in cart")

// User models an account in the system. Cart and EnrolledCourses live on the
// user document itself: the cart holds denormalized course snapshots, and
// EnrolledCourses is a list with set semantics (no duplicates).
type User struct {
	ID              string     `json:"uid"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	Role            string     `json:"role"`
	Bio             string     `json:"bio,omitempty"`
	Image           string     `json:"image,omitempty"`
	Cart            []CartItem `json:"cart"`
	EnrolledCourses []string   `json:"enrolledCourses"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Enrolled reports whether the user already holds courseID.
func (u *User) Enrolled(courseID string) bool {
	for _, id := range u.EnrolledCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// CartItem is a snapshot of a course at the moment it was added to the cart.
// Catalog changes after that point intentionally do not propagate here.
type CartItem struct {
	ID         string    `json:"id" bson:"id"`
	Title      string    `json:"title" bson:"title"`
	Instructor string    `json:"instructor" bson:"instructor"`
	Price      float64   `json:"price" bson:"price"`
	Image      string    `json:"image,omitempty" bson:"image,omitempty"`
	Duration   string    `json:"duration,omitempty" bson:"duration,omitempty"`
	Level      string    `json:"level,omitempty" bson:"level,omitempty"`
	AddedAt    time.Time `json:"addedAt" bson:"added_at"`
}

// Principal is the authenticated identity extracted from a bearer token.
// It is produced once by the auth middleware and passed explicitly to
// services that need the caller's identity.
type Principal struct {
	ID    string
	Email string
	Role  string
	Name  string
}
