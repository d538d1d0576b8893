package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
)

const defaultSearchSize = 10

type BootcampService struct {
	Repo      repository.BootcampRepository
	Geocoder  Geocoder
	Files     FileStore
	Search    SearchIndex // optional
	Logger    *logrus.Logger
	MaxUpload int64
}

func NewBootcampService(repo repository.BootcampRepository, geo Geocoder, files FileStore, search SearchIndex, logger *logrus.Logger, maxUpload int64) *BootcampService {
	return &BootcampService{Repo: repo, Geocoder: geo, Files: files, Search: search, Logger: logger, MaxUpload: maxUpload}
}

type BootcampInput struct {
	Name          string
	Description   string
	Website       string
	Phone         string
	Email         string
	Address       string
	Careers       []string
	Housing       bool
	JobAssistance bool
	JobGuarantee  bool
	AcceptGi      bool
}

// BootcampPatch carries only the fields present in an update request.
type BootcampPatch struct {
	Name          *string
	Description   *string
	Website       *string
	Phone         *string
	Email         *string
	Address       *string
	Careers       []string
	Housing       *bool
	JobAssistance *bool
	JobGuarantee  *bool
	AcceptGi      *bool
}

func (s *BootcampService) List(ctx context.Context, d *query.Descriptor) (Page[entity.Bootcamp], error) {
	return listPage(ctx, d, s.Repo.List, s.Repo.Count)
}

func (s *BootcampService) Get(ctx context.Context, id string) (*entity.Bootcamp, error) {
	return s.Repo.GetByID(ctx, id)
}

// Create publishes a bootcamp owned by p. Non-admins may own one bootcamp;
// the store enforces it too, so a concurrent second create also fails.
func (s *BootcampService) Create(ctx context.Context, p entity.Principal, in BootcampInput) (*entity.Bootcamp, error) {
	exclusive := !p.IsAdmin()
	if exclusive {
		n, err := s.Repo.CountByUser(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, apperror.Conflict("The user with ID %s has already published a bootcamp", p.ID)
		}
	}

	b := &entity.Bootcamp{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Website:       in.Website,
		Phone:         in.Phone,
		Email:         in.Email,
		Careers:       in.Careers,
		Housing:       in.Housing,
		JobAssistance: in.JobAssistance,
		JobGuarantee:  in.JobGuarantee,
		AcceptGi:      in.AcceptGi,
		Photo:         entity.DefaultPhoto,
		UserID:        p.ID,
	}
	b.Slug = slug.Make(b.Name)
	loc, err := s.Geocoder.Geocode(ctx, in.Address)
	if err != nil {
		return nil, err
	}
	b.Location = loc

	if err := s.Repo.Create(ctx, b, exclusive); err != nil {
		if exclusive && errors.Is(err, apperror.ErrConflict) {
			if n, cErr := s.Repo.CountByUser(ctx, p.ID); cErr == nil && n > 0 {
				return nil, apperror.Conflict("The user with ID %s has already published a bootcamp", p.ID)
			}
		}
		return nil, err
	}
	s.index(ctx, b)
	return b, nil
}

func (s *BootcampService) Update(ctx context.Context, p entity.Principal, id string, patch BootcampPatch) (*entity.Bootcamp, error) {
	b, err := s.owned(ctx, p, id, "update")
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		b.Name = strings.TrimSpace(*patch.Name)
		b.Slug = slug.Make(b.Name)
	}
	setString(&b.Description, patch.Description)
	setString(&b.Website, patch.Website)
	setString(&b.Phone, patch.Phone)
	setString(&b.Email, patch.Email)
	setBool(&b.Housing, patch.Housing)
	setBool(&b.JobAssistance, patch.JobAssistance)
	setBool(&b.JobGuarantee, patch.JobGuarantee)
	setBool(&b.AcceptGi, patch.AcceptGi)
	if patch.Careers != nil {
		b.Careers = patch.Careers
	}
	if patch.Address != nil {
		loc, err := s.Geocoder.Geocode(ctx, *patch.Address)
		if err != nil {
			return nil, err
		}
		b.Location = loc
	}
	if err := s.Repo.Update(ctx, b); err != nil {
		return nil, err
	}
	s.index(ctx, b)
	return b, nil
}

// Delete removes the bootcamp together with its courses and reviews.
func (s *BootcampService) Delete(ctx context.Context, p entity.Principal, id string) error {
	if _, err := s.owned(ctx, p, id, "delete"); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.Search != nil {
		if err := s.Search.Remove(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("bootcamp_id", id).Warn("search index remove failed")
		}
	}
	return nil
}

// WithinRadius geocodes zipcode and returns bootcamps at most distance miles away.
func (s *BootcampService) WithinRadius(ctx context.Context, zipcode string, distance float64) ([]entity.Bootcamp, error) {
	if distance < 0 {
		return nil, apperror.Validation("distance must not be negative")
	}
	loc, err := s.Geocoder.Geocode(ctx, zipcode)
	if err != nil {
		return nil, err
	}
	return s.Repo.WithinRadius(ctx, loc.Latitude(), loc.Longitude(), distance)
}

// UploadPhoto stores an image for the bootcamp and returns its location.
// Size is the declared upload size; the content itself decides the MIME type.
func (s *BootcampService) UploadPhoto(ctx context.Context, p entity.Principal, id string, size int64, r io.Reader) (string, error) {
	if _, err := s.owned(ctx, p, id, "update"); err != nil {
		return "", err
	}
	if size > s.MaxUpload {
		return "", apperror.Validation("Please upload an image less than %d bytes", s.MaxUpload)
	}
	buf, err := io.ReadAll(io.LimitReader(r, s.MaxUpload+1))
	if err != nil {
		return "", err
	}
	if len(buf) == 0 {
		return "", apperror.Validation("Please upload a file")
	}
	if int64(len(buf)) > s.MaxUpload {
		return "", apperror.Validation("Please upload an image less than %d bytes", s.MaxUpload)
	}
	mt := mimetype.Detect(buf)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", apperror.Validation("Please upload an image file")
	}

	name := fmt.Sprintf("photos/photo_%s%s", id, mt.Extension())
	location, err := s.Files.Put(ctx, name, mt.String(), bytes.NewReader(buf))
	if err != nil {
		return "", apperror.Upstream(err, "Problem with file upload")
	}
	if err := s.Repo.UpdatePhoto(ctx, id, location); err != nil {
		return "", err
	}
	return location, nil
}

func (s *BootcampService) SearchText(ctx context.Context, q string, size int) ([]entity.BootcampSummary, error) {
	if strings.TrimSpace(q) == "" {
		return nil, apperror.Validation("Please provide a search term")
	}
	if s.Search == nil {
		return []entity.BootcampSummary{}, nil
	}
	if size <= 0 || size > 50 {
		size = defaultSearchSize
	}
	hits, err := s.Search.Search(ctx, q, size)
	if err != nil {
		return nil, apperror.Upstream(err, "Search is unavailable")
	}
	return hits, nil
}

// owned loads bootcamp id and checks that p may act on it.
func (s *BootcampService) owned(ctx context.Context, p entity.Principal, id, action string) (*entity.Bootcamp, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Owns(b.UserID) {
		return nil, apperror.Forbidden("User %s is not authorized to %s this bootcamp", p.ID, action)
	}
	return b, nil
}

func (s *BootcampService) index(ctx context.Context, b *entity.Bootcamp) {
	if s.Search == nil {
		return
	}
	if err := s.Search.Index(ctx, b); err != nil {
		s.Logger.WithError(err).WithField("bootcamp_id", b.ID).Warn("search index failed")
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
