package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
)

// reviewColumns expects reviews aliased r joined to bootcamps b.
const reviewColumns = `r.id, r.title, r.text, r.rating, r.bootcamp_id, r.user_id, r.created_at,
	b.name, b.description`

const reviewFrom = `reviews r LEFT JOIN bootcamps b ON b.id = r.bootcamp_id`

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

func scanReview(row scanner, populate bool) (*entity.Review, error) {
	var (
		rv           entity.Review
		bName, bDesc *string
	)
	if err := row.Scan(&rv.ID, &rv.Title, &rv.Text, &rv.Rating, &rv.BootcampID, &rv.UserID, &rv.CreatedAt,
		&bName, &bDesc); err != nil {
		return nil, err
	}
	if populate && bName != nil {
		rv.Bootcamp = &entity.BootcampSummary{ID: rv.BootcampID, Name: *bName, Description: deref(bDesc)}
	}
	return &rv, nil
}

func (r *ReviewRepository) List(ctx context.Context, d *query.Descriptor) ([]entity.Review, error) {
	sql, args := listSQL(reviewColumns, reviewFrom, "r", d)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err, "Review", "")
	}
	defer rows.Close()

	populate := d.Populates("bootcamp")
	var out []entity.Review
	for rows.Next() {
		rv, err := scanReview(rows, populate)
		if err != nil {
			return nil, translate(err, "Review", "")
		}
		out = append(out, *rv)
	}
	return out, translate(rows.Err(), "Review", "")
}

func (r *ReviewRepository) Count(ctx context.Context, d *query.Descriptor) (int, error) {
	sql, args := countSQL("reviews", "r", d)
	var n int
	err := r.pool.QueryRow(ctx, sql, args...).Scan(&n)
	return n, translate(err, "Review", "")
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	rv, err := scanReview(r.pool.QueryRow(ctx, `SELECT `+reviewColumns+` FROM `+reviewFrom+` WHERE r.id = $1`, id), true)
	if err != nil {
		return nil, translate(err, "Review", id)
	}
	return rv, nil
}

func (r *ReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (title, text, rating, bootcamp_id, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, rv.Title, rv.Text, rv.Rating, rv.BootcampID, rv.UserID)
	return translate(row.Scan(&rv.ID, &rv.CreatedAt), "Review", "")
}

func (r *ReviewRepository) Update(ctx context.Context, rv *entity.Review) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE reviews SET title = $1, text = $2, rating = $3 WHERE id = $4
	`, rv.Title, rv.Text, rv.Rating, rv.ID)
	if err != nil {
		return translate(err, "Review", rv.ID)
	}
	if res.RowsAffected() == 0 {
		return notFound("Review", rv.ID)
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return translate(err, "Review", id)
	}
	if res.RowsAffected() == 0 {
		return notFound("Review", id)
	}
	return nil
}

func (r *ReviewRepository) AverageRating(ctx context.Context, bootcampID string) (*float64, error) {
	var avg *float64
	err := r.pool.QueryRow(ctx, `SELECT AVG(rating)::float8 FROM reviews WHERE bootcamp_id = $1`, bootcampID).Scan(&avg)
	if err != nil {
		return nil, translate(err, "Review", bootcampID)
	}
	return avg, nil
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
