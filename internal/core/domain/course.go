package domain

import (
	"errors"
	"time"
)

// Course levels accepted by the catalog.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelAllRange     = "Beginner to Advanced"
)

var ErrCourseNotFound = errors.New("course not found")

// Course is a catalog entry. Students is a denormalized enrollment counter
// maintained alongside the catalog fields.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Instructor  string    `json:"instructor"`
	Duration    string    `json:"duration"`
	Level       string    `json:"level"`
	Price       float64   `json:"price"`
	Rating      float64   `json:"rating"`
	Students    int       `json:"students"`
	Image       string    `json:"image,omitempty"`
	Skills      []string  `json:"skills,omitempty"`
	Curriculum  []string  `json:"curriculum,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
