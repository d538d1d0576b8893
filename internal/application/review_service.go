package application

import (
	"context"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
)

type ReviewService struct {
	Repo      repository.ReviewRepository
	Bootcamps repository.BootcampRepository
	Recompute *Recomputer
}

func NewReviewService(repo repository.ReviewRepository, bootcamps repository.BootcampRepository, rc *Recomputer) *ReviewService {
	return &ReviewService{Repo: repo, Bootcamps: bootcamps, Recompute: rc}
}

type ReviewInput struct {
	Title  string
	Text   string
	Rating int
}

type ReviewPatch struct {
	Title  *string
	Text   *string
	Rating *int
}

func (s *ReviewService) List(ctx context.Context, d *query.Descriptor) (Page[entity.Review], error) {
	return listPage(ctx, d, s.Repo.List, s.Repo.Count)
}

func (s *ReviewService) Get(ctx context.Context, id string) (*entity.Review, error) {
	return s.Repo.GetByID(ctx, id)
}

// Create adds p's review of a bootcamp. A second review by the same user is a Conflict.
func (s *ReviewService) Create(ctx context.Context, p entity.Principal, bootcampID string, in ReviewInput) (*entity.Review, error) {
	if _, err := s.Bootcamps.GetByID(ctx, bootcampID); err != nil {
		return nil, err
	}
	r := &entity.Review{
		Title:      in.Title,
		Text:       in.Text,
		Rating:     in.Rating,
		BootcampID: bootcampID,
		UserID:     p.ID,
	}
	if err := s.Repo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.Recompute.Trigger(AverageRating, bootcampID)
	return r, nil
}

func (s *ReviewService) Update(ctx context.Context, p entity.Principal, id string, patch ReviewPatch) (*entity.Review, error) {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Owns(r.UserID) {
		return nil, apperror.Forbidden("Not authorized to update review %s", id)
	}
	oldRating := r.Rating
	setString(&r.Title, patch.Title)
	setString(&r.Text, patch.Text)
	if patch.Rating != nil {
		r.Rating = *patch.Rating
	}
	if err := s.Repo.Update(ctx, r); err != nil {
		return nil, err
	}
	if r.Rating != oldRating {
		s.Recompute.Trigger(AverageRating, r.BootcampID)
	}
	return r, nil
}

func (s *ReviewService) Delete(ctx context.Context, p entity.Principal, id string) error {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !p.Owns(r.UserID) {
		return apperror.Forbidden("Not authorized to delete review %s", id)
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Recompute.Trigger(AverageRating, r.BootcampID)
	return nil
}
