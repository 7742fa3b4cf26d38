package ports

import (
	"context"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

// DashboardStats is the headline figures block on the admin dashboard.
type DashboardStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	Students         int64 `json:"students"`
	Instructors      int64 `json:"instructors"`
	Admins           int64 `json:"admins"`
	TotalCourses     int64 `json:"totalCourses"`
	TotalEnrollments int64 `json:"totalEnrollments"`
}

// RecentActivities groups the dashboard's recency feeds.
type RecentActivities struct {
	RecentUsers   []*domain.User          `json:"recentUsers"`
	RecentCourses []*domain.Course        `json:"recentCourses"`
	RecentEvents  []*domain.ActivityEvent `json:"recentEvents"`
}

type AdminService interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	RecentActivities(ctx context.Context, limit int) (*RecentActivities, error)
}
