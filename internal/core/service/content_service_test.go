package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nextgen-lms/backend/internal/core/domain"
	"github.com/nextgen-lms/backend/internal/core/ports"
)

type stubContentRepo struct {
	seq      int
	contents map[string]*domain.CourseContent
}

func newStubContentRepo() *stubContentRepo {
	return &stubContentRepo{contents: make(map[string]*domain.CourseContent)}
}

func cloneContent(c *domain.CourseContent) *domain.CourseContent {
	clone := *c
	if c.Sections != nil {
		clone.Sections = append([]domain.Section{}, c.Sections...)
	}
	return &clone
}

func (r *stubContentRepo) Create(_ context.Context, content *domain.CourseContent) (*domain.CourseContent, error) {
	r.seq++
	clone := cloneContent(content)
	clone.ID = fmt.Sprintf("content-%d", r.seq)
	r.contents[clone.ID] = cloneContent(clone)
	return clone, nil
}

func (r *stubContentRepo) FindByID(_ context.Context, id string) (*domain.CourseContent, error) {
	c, ok := r.contents[id]
	if !ok {
		return nil, domain.ErrContentNotFound
	}
	return cloneContent(c), nil
}

func (r *stubContentRepo) FindByCourseID(_ context.Context, courseID string) (*domain.CourseContent, error) {
	for _, c := range r.contents {
		if c.CourseID == courseID {
			return cloneContent(c), nil
		}
	}
	return nil, domain.ErrContentNotFound
}

func (r *stubContentRepo) Update(_ context.Context, id string, upd ports.ContentUpdate) (*domain.CourseContent, error) {
	c, ok := r.contents[id]
	if !ok {
		return nil, domain.ErrContentNotFound
	}
	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.Sections != nil {
		c.Sections = append([]domain.Section(nil), upd.Sections...)
	}
	return cloneContent(c), nil
}

func (r *stubContentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.contents[id]; !ok {
		return domain.ErrContentNotFound
	}
	delete(r.contents, id)
	return nil
}

func TestContentService_Create_NilSections(t *testing.T) {
	svc := NewContentService(newStubContentRepo(), zerolog.Nop())

	content, err := svc.Create(context.Background(), ports.CreateContentInput{
		CourseID: "course-1",
		Title:    "Curriculum",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if content.Sections == nil {
		t.Fatalf("expected empty sections, got nil")
	}
}

func TestContentService_GetByCourse(t *testing.T) {
	repo := newStubContentRepo()
	svc := NewContentService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateContentInput{
		CourseID: "course-1",
		Title:    "Curriculum",
		Sections: []domain.Section{{
			Title:   "Intro",
			Lessons: []domain.Lesson{{Title: "Welcome", Type: domain.LessonVideo}},
		}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, err := svc.GetByCourse(context.Background(), "course-1")
	if err != nil {
		t.Fatalf("GetByCourse returned error: %v", err)
	}
	if found.ID != created.ID || len(found.Sections) != 1 {
		t.Fatalf("unexpected content: %+v", found)
	}

	if _, err := svc.GetByCourse(context.Background(), "course-2"); !errors.Is(err, domain.ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}

func TestContentService_Update_ReplacesSections(t *testing.T) {
	repo := newStubContentRepo()
	svc := NewContentService(repo, zerolog.Nop())

	created, _ := svc.Create(context.Background(), ports.CreateContentInput{
		CourseID: "course-1",
		Title:    "Curriculum",
		Sections: []domain.Section{{Title: "Old"}, {Title: "Older"}},
	})

	updated, err := svc.Update(context.Background(), created.ID, ports.ContentUpdate{
		Sections: []domain.Section{{Title: "New"}},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(updated.Sections) != 1 || updated.Sections[0].Title != "New" {
		t.Fatalf("sections not replaced: %+v", updated.Sections)
	}
}
