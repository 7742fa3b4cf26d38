package domain

import (
	"errors"
	"time"
)

// LessonType enumerates the kinds of material a lesson can hold.
type LessonType string

const (
	LessonVideo    LessonType = "video"
	LessonDocument LessonType = "document"
	LessonDownload LessonType = "download"
)

var ErrContentNotFound = errors.New("course content not found")

// Lesson is a single unit inside a section.
type Lesson struct {
	Title       string     `json:"title" bson:"title"`
	Type        LessonType `json:"type" bson:"type"`
	Duration    string     `json:"duration,omitempty" bson:"duration,omitempty"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	URL         string     `json:"url,omitempty" bson:"url,omitempty"`
	Content     string     `json:"content,omitempty" bson:"content,omitempty"`
}

// Section is an ordered group of lessons.
type Section struct {
	Title   string   `json:"title" bson:"title"`
	Lessons []Lesson `json:"lessons" bson:"lessons"`
}

// CourseContent is the structured curriculum for a course. Exactly one
// content document exists per course, keyed by CourseID, with a lifecycle
// independent of the catalog entry.
type CourseContent struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"courseId"`
	Title     string    `json:"title"`
	Sections  []Section `json:"sections"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
