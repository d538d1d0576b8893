package repository

import (
	"context"
	"time"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
)

// Implementations return apperror kinds: NotFound for missing rows or
// malformed ids, Conflict for unique violations.

type UserRepository interface {
	List(ctx context.Context, d *query.Descriptor) ([]entity.User, error)
	Count(ctx context.Context, d *query.Descriptor) (int, error)
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByResetToken only matches tokens whose expiry is after now.
	GetByResetToken(ctx context.Context, hash string, now time.Time) (*entity.User, error)
	GetByConfirmToken(ctx context.Context, hash string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
}

type BootcampRepository interface {
	List(ctx context.Context, d *query.Descriptor) ([]entity.Bootcamp, error)
	Count(ctx context.Context, d *query.Descriptor) (int, error)
	GetByID(ctx context.Context, id string) (*entity.Bootcamp, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	// Create inserts b. When exclusive is set the store refuses a second
	// exclusive bootcamp for the same user with a Conflict.
	Create(ctx context.Context, b *entity.Bootcamp, exclusive bool) error
	Update(ctx context.Context, b *entity.Bootcamp) error
	UpdatePhoto(ctx context.Context, id, photo string) error
	// Delete removes the bootcamp with its courses and reviews in one transaction.
	Delete(ctx context.Context, id string) error
	WithinRadius(ctx context.Context, lat, lng, radiusMiles float64) ([]entity.Bootcamp, error)
	SetAverageCost(ctx context.Context, id string, cost *int) error
	SetAverageRating(ctx context.Context, id string, rating *int) error
}

type CourseRepository interface {
	List(ctx context.Context, d *query.Descriptor) ([]entity.Course, error)
	Count(ctx context.Context, d *query.Descriptor) (int, error)
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	Create(ctx context.Context, c *entity.Course) error
	Update(ctx context.Context, c *entity.Course) error
	Delete(ctx context.Context, id string) error
	// AverageTuition is nil when the bootcamp has no courses.
	AverageTuition(ctx context.Context, bootcampID string) (*float64, error)
}

type ReviewRepository interface {
	List(ctx context.Context, d *query.Descriptor) ([]entity.Review, error)
	Count(ctx context.Context, d *query.Descriptor) (int, error)
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	Create(ctx context.Context, r *entity.Review) error
	Update(ctx context.Context, r *entity.Review) error
	Delete(ctx context.Context, id string) error
	// AverageRating is nil when the bootcamp has no reviews.
	AverageRating(ctx context.Context, bootcampID string) (*float64, error)
}
