package domain

import (
	"errors"
	"time"
)

// Notice types used by the frontend to pick styling.
const (
	NoticeInfo    = "info"
	NoticeWarning = "warning"
	NoticeSuccess = "success"
	NoticeError   = "error"
)

var ErrNoticeNotFound = errors.New("notice not found")

// Notice is an announcement shown on the public notice board.
// Public display ordering is priority desc, then creation time desc.
type Notice struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Type          string    `json:"type"`
	Priority      int       `json:"priority"`
	IsActive      bool      `json:"isActive"`
	CreatedBy     string    `json:"createdBy,omitempty"`
	CreatedByName string    `json:"createdByName,omitempty"`
	UpdatedBy     string    `json:"updatedBy,omitempty"`
	UpdatedByName string    `json:"updatedByName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
