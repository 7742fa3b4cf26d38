package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nextgen-lms/backend/internal/core/domain"
	"github.com/nextgen-lms/backend/internal/core/ports"
)

const defaultActivityLimit = 10

// AdminService aggregates dashboard figures across collections.
type AdminService struct {
	users      ports.UserRepository
	courses    ports.CourseRepository
	activities ports.ActivityRepository
	log        zerolog.Logger
}

func NewAdminService(users ports.UserRepository, courses ports.CourseRepository, activities ports.ActivityRepository, log zerolog.Logger) *AdminService {
	return &AdminService{users: users, courses: courses, activities: activities, log: log}
}

func (s *AdminService) DashboardStats(ctx context.Context) (*ports.DashboardStats, error) {
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	totalCourses, err := s.courses.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count courses: %w", err)
	}

	totalEnrollments, err := s.courses.SumStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum enrollments: %w", err)
	}

	var totalUsers int64
	for _, n := range byRole {
		totalUsers += n
	}

	return &ports.DashboardStats{
		TotalUsers:       totalUsers,
		Students:         byRole[domain.RoleStudent],
		Instructors:      byRole[domain.RoleInstructor],
		Admins:           byRole[domain.RoleAdmin],
		TotalCourses:     totalCourses,
		TotalEnrollments: totalEnrollments,
	}, nil
}

func (s *AdminService) RecentActivities(ctx context.Context, limit int) (*ports.RecentActivities, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	users, err := s.users.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent users: %w", err)
	}

	courses, err := s.courses.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent courses: %w", err)
	}

	events, err := s.activities.ListRecent(ctx, limit)
	if err != nil {
		// The activity feed is supplementary; a failed read should not blank
		// the whole dashboard.
		s.log.Warn().Err(err).Msg("failed to load activity feed")
		events = nil
	}

	return &ports.RecentActivities{
		RecentUsers:   users,
		RecentCourses: courses,
		RecentEvents:  events,
	}, nil
}
