package application

import (
	"context"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
)

type CourseService struct {
	Repo      repository.CourseRepository
	Bootcamps repository.BootcampRepository
	Recompute *Recomputer
}

func NewCourseService(repo repository.CourseRepository, bootcamps repository.BootcampRepository, rc *Recomputer) *CourseService {
	return &CourseService{Repo: repo, Bootcamps: bootcamps, Recompute: rc}
}

type CourseInput struct {
	Title                string
	Description          string
	Weeks                int
	Tuition              float64
	MinimumSkill         entity.Skill
	ScholarshipAvailable bool
}

type CoursePatch struct {
	Title                *string
	Description          *string
	Weeks                *int
	Tuition              *float64
	MinimumSkill         *entity.Skill
	ScholarshipAvailable *bool
	BootcampID           *string
}

func (s *CourseService) List(ctx context.Context, d *query.Descriptor) (Page[entity.Course], error) {
	return listPage(ctx, d, s.Repo.List, s.Repo.Count)
}

func (s *CourseService) Get(ctx context.Context, id string) (*entity.Course, error) {
	return s.Repo.GetByID(ctx, id)
}

// Create adds a course to a bootcamp the principal owns.
func (s *CourseService) Create(ctx context.Context, p entity.Principal, bootcampID string, in CourseInput) (*entity.Course, error) {
	if err := s.ownsBootcamp(ctx, p, bootcampID, "add a course to"); err != nil {
		return nil, err
	}
	c := &entity.Course{
		Title:                in.Title,
		Description:          in.Description,
		Weeks:                in.Weeks,
		Tuition:              in.Tuition,
		MinimumSkill:         in.MinimumSkill,
		ScholarshipAvailable: in.ScholarshipAvailable,
		BootcampID:           bootcampID,
		UserID:               p.ID,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.Recompute.Trigger(AverageCost, bootcampID)
	return c, nil
}

// Update changes a course owned by p. Moving it to another bootcamp
// recomputes both bootcamps.
func (s *CourseService) Update(ctx context.Context, p entity.Principal, id string, patch CoursePatch) (*entity.Course, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Owns(c.UserID) {
		return nil, apperror.Forbidden("User %s is not authorized to update course %s", p.ID, id)
	}
	oldBootcamp := c.BootcampID
	oldTuition := c.Tuition

	setString(&c.Title, patch.Title)
	setString(&c.Description, patch.Description)
	setBool(&c.ScholarshipAvailable, patch.ScholarshipAvailable)
	if patch.Weeks != nil {
		c.Weeks = *patch.Weeks
	}
	if patch.Tuition != nil {
		c.Tuition = *patch.Tuition
	}
	if patch.MinimumSkill != nil {
		c.MinimumSkill = *patch.MinimumSkill
	}
	if patch.BootcampID != nil && *patch.BootcampID != oldBootcamp {
		if err := s.ownsBootcamp(ctx, p, *patch.BootcampID, "move a course to"); err != nil {
			return nil, err
		}
		c.BootcampID = *patch.BootcampID
		c.Bootcamp = nil
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, err
	}
	if c.BootcampID != oldBootcamp || c.Tuition != oldTuition {
		s.Recompute.Trigger(AverageCost, oldBootcamp, c.BootcampID)
	}
	return c, nil
}

func (s *CourseService) Delete(ctx context.Context, p entity.Principal, id string) error {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !p.Owns(c.UserID) {
		return apperror.Forbidden("User %s is not authorized to delete course %s", p.ID, id)
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Recompute.Trigger(AverageCost, c.BootcampID)
	return nil
}

func (s *CourseService) ownsBootcamp(ctx context.Context, p entity.Principal, bootcampID, action string) error {
	b, err := s.Bootcamps.GetByID(ctx, bootcampID)
	if err != nil {
		return err
	}
	if !p.Owns(b.UserID) {
		return apperror.Forbidden("User %s is not authorized to %s bootcamp %s", p.ID, action, b.ID)
	}
	return nil
}
