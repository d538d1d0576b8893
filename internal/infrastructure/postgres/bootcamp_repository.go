package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
)

const bootcampColumns = `b.id, b.name, b.slug, b.description, b.website, b.phone, b.email,
	b.location_type, b.longitude, b.latitude, b.formatted_address,
	b.street, b.city, b.state, b.zipcode, b.country,
	b.careers, b.average_rating, b.average_cost, b.photo,
	b.housing, b.job_assistance, b.job_guarantee, b.accept_gi,
	b.user_id, b.created_at`

// earthRadiusMiles converts a great-circle angle into miles.
const earthRadiusMiles = 3963.2

type BootcampRepository struct {
	pool *pgxpool.Pool
}

func NewBootcampRepository(pool *pgxpool.Pool) *BootcampRepository {
	return &BootcampRepository{pool: pool}
}

func scanBootcamp(row scanner) (*entity.Bootcamp, error) {
	var b entity.Bootcamp
	loc := &b.Location
	if err := row.Scan(&b.ID, &b.Name, &b.Slug, &b.Description, &b.Website, &b.Phone, &b.Email,
		&loc.Type, &loc.Coordinates[0], &loc.Coordinates[1], &loc.FormattedAddress,
		&loc.Street, &loc.City, &loc.State, &loc.Zipcode, &loc.Country,
		&b.Careers, &b.AverageRating, &b.AverageCost, &b.Photo,
		&b.Housing, &b.JobAssistance, &b.JobGuarantee, &b.AcceptGi,
		&b.UserID, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BootcampRepository) collect(rows pgx.Rows) ([]entity.Bootcamp, error) {
	defer rows.Close()
	var out []entity.Bootcamp
	for rows.Next() {
		b, err := scanBootcamp(rows)
		if err != nil {
			return nil, translate(err, "Bootcamp", "")
		}
		out = append(out, *b)
	}
	return out, translate(rows.Err(), "Bootcamp", "")
}

func (r *BootcampRepository) List(ctx context.Context, d *query.Descriptor) ([]entity.Bootcamp, error) {
	sql, args := listSQL(bootcampColumns, "bootcamps b", "b", d)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err, "Bootcamp", "")
	}
	out, err := r.collect(rows)
	if err != nil || !d.Populates("courses") || len(out) == 0 {
		return out, err
	}
	return out, r.attachCourses(ctx, out)
}

// attachCourses loads the courses of every bootcamp in one query.
func (r *BootcampRepository) attachCourses(ctx context.Context, bootcamps []entity.Bootcamp) error {
	ids := make([]string, 0, len(bootcamps))
	index := make(map[string]int, len(bootcamps))
	for i, b := range bootcamps {
		ids = append(ids, b.ID)
		index[b.ID] = i
	}
	rows, err := r.pool.Query(ctx, `SELECT `+courseColumns+` FROM courses c
		LEFT JOIN bootcamps b ON b.id = c.bootcamp_id
		WHERE c.bootcamp_id = ANY($1::uuid[])
		ORDER BY c.created_at ASC, c.id ASC`, ids)
	if err != nil {
		return translate(err, "Course", "")
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanCourse(rows, false)
		if err != nil {
			return translate(err, "Course", "")
		}
		i := index[c.BootcampID]
		bootcamps[i].Courses = append(bootcamps[i].Courses, *c)
	}
	return translate(rows.Err(), "Course", "")
}

func (r *BootcampRepository) Count(ctx context.Context, d *query.Descriptor) (int, error) {
	sql, args := countSQL("bootcamps", "b", d)
	var n int
	err := r.pool.QueryRow(ctx, sql, args...).Scan(&n)
	return n, translate(err, "Bootcamp", "")
}

func (r *BootcampRepository) GetByID(ctx context.Context, id string) (*entity.Bootcamp, error) {
	b, err := scanBootcamp(r.pool.QueryRow(ctx, `SELECT `+bootcampColumns+` FROM bootcamps b WHERE b.id = $1`, id))
	if err != nil {
		return nil, translate(err, "Bootcamp", id)
	}
	return b, nil
}

func (r *BootcampRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bootcamps WHERE user_id = $1`, userID).Scan(&n)
	return n, translate(err, "Bootcamp", "")
}

func (r *BootcampRepository) Create(ctx context.Context, b *entity.Bootcamp, exclusive bool) error {
	loc := b.Location
	row := r.pool.QueryRow(ctx, `
		INSERT INTO bootcamps (name, slug, description, website, phone, email,
			location_type, longitude, latitude, formatted_address,
			street, city, state, zipcode, country,
			careers, photo, housing, job_assistance, job_guarantee, accept_gi,
			user_id, owner_exclusive)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING id, created_at
	`, b.Name, b.Slug, b.Description, b.Website, b.Phone, b.Email,
		loc.Type, loc.Longitude(), loc.Latitude(), loc.FormattedAddress,
		loc.Street, loc.City, loc.State, loc.Zipcode, loc.Country,
		b.Careers, b.Photo, b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGi,
		b.UserID, exclusive)
	return translate(row.Scan(&b.ID, &b.CreatedAt), "Bootcamp", "")
}

func (r *BootcampRepository) Update(ctx context.Context, b *entity.Bootcamp) error {
	loc := b.Location
	res, err := r.pool.Exec(ctx, `
		UPDATE bootcamps
		SET name = $1, slug = $2, description = $3, website = $4, phone = $5, email = $6,
			location_type = $7, longitude = $8, latitude = $9, formatted_address = $10,
			street = $11, city = $12, state = $13, zipcode = $14, country = $15,
			careers = $16, housing = $17, job_assistance = $18, job_guarantee = $19, accept_gi = $20
		WHERE id = $21
	`, b.Name, b.Slug, b.Description, b.Website, b.Phone, b.Email,
		loc.Type, loc.Longitude(), loc.Latitude(), loc.FormattedAddress,
		loc.Street, loc.City, loc.State, loc.Zipcode, loc.Country,
		b.Careers, b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGi, b.ID)
	if err != nil {
		return translate(err, "Bootcamp", b.ID)
	}
	if res.RowsAffected() == 0 {
		return notFound("Bootcamp", b.ID)
	}
	return nil
}

func (r *BootcampRepository) UpdatePhoto(ctx context.Context, id, photo string) error {
	res, err := r.pool.Exec(ctx, `UPDATE bootcamps SET photo = $1 WHERE id = $2`, photo, id)
	if err != nil {
		return translate(err, "Bootcamp", id)
	}
	if res.RowsAffected() == 0 {
		return notFound("Bootcamp", id)
	}
	return nil
}

// Delete removes reviews, courses and the bootcamp in one transaction.
func (r *BootcampRepository) Delete(ctx context.Context, id string) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translate(err, "Bootcamp", id)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM reviews WHERE bootcamp_id = $1`, id); err != nil {
		return translate(err, "Bootcamp", id)
	}
	if _, err = tx.Exec(ctx, `DELETE FROM courses WHERE bootcamp_id = $1`, id); err != nil {
		return translate(err, "Bootcamp", id)
	}
	res, err := tx.Exec(ctx, `DELETE FROM bootcamps WHERE id = $1`, id)
	if err != nil {
		return translate(err, "Bootcamp", id)
	}
	if res.RowsAffected() == 0 {
		err = notFound("Bootcamp", id)
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return translate(err, "Bootcamp", id)
	}
	return nil
}

// WithinRadius returns bootcamps whose haversine distance from (lat, lng) is
// at most radiusMiles.
func (r *BootcampRepository) WithinRadius(ctx context.Context, lat, lng, radiusMiles float64) ([]entity.Bootcamp, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bootcampColumns+` FROM bootcamps b
		WHERE 2 * $4::float8 * asin(sqrt(
			power(sin(radians(b.latitude - $1::float8) / 2), 2) +
			cos(radians($1::float8)) * cos(radians(b.latitude)) *
			power(sin(radians(b.longitude - $2::float8) / 2), 2)
		)) <= $3::float8
		ORDER BY b.created_at DESC, b.id ASC
	`, lat, lng, radiusMiles, earthRadiusMiles)
	if err != nil {
		return nil, translate(err, "Bootcamp", "")
	}
	return r.collect(rows)
}

func (r *BootcampRepository) SetAverageCost(ctx context.Context, id string, cost *int) error {
	_, err := r.pool.Exec(ctx, `UPDATE bootcamps SET average_cost = $1 WHERE id = $2`, cost, id)
	return translate(err, "Bootcamp", id)
}

func (r *BootcampRepository) SetAverageRating(ctx context.Context, id string, rating *int) error {
	_, err := r.pool.Exec(ctx, `UPDATE bootcamps SET average_rating = $1 WHERE id = $2`, rating, id)
	return translate(err, "Bootcamp", id)
}

var _ repository.BootcampRepository = (*BootcampRepository)(nil)
