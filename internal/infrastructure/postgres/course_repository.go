package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
)

// courseColumns expects courses aliased c joined to bootcamps b.
const courseColumns = `c.id, c.title, c.description, c.weeks, c.tuition, c.minimum_skill,
	c.scholarship_available, c.bootcamp_id, c.user_id, c.created_at,
	b.name, b.description`

const courseFrom = `courses c LEFT JOIN bootcamps b ON b.id = c.bootcamp_id`

type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// scanCourse reads courseColumns; the bootcamp summary is attached when populate is set.
func scanCourse(row scanner, populate bool) (*entity.Course, error) {
	var (
		c            entity.Course
		bName, bDesc *string
	)
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Weeks, &c.Tuition, &c.MinimumSkill,
		&c.ScholarshipAvailable, &c.BootcampID, &c.UserID, &c.CreatedAt,
		&bName, &bDesc); err != nil {
		return nil, err
	}
	if populate && bName != nil {
		c.Bootcamp = &entity.BootcampSummary{ID: c.BootcampID, Name: *bName, Description: deref(bDesc)}
	}
	return &c, nil
}

func (r *CourseRepository) List(ctx context.Context, d *query.Descriptor) ([]entity.Course, error) {
	sql, args := listSQL(courseColumns, courseFrom, "c", d)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err, "Course", "")
	}
	defer rows.Close()

	populate := d.Populates("bootcamp")
	var out []entity.Course
	for rows.Next() {
		c, err := scanCourse(rows, populate)
		if err != nil {
			return nil, translate(err, "Course", "")
		}
		out = append(out, *c)
	}
	return out, translate(rows.Err(), "Course", "")
}

func (r *CourseRepository) Count(ctx context.Context, d *query.Descriptor) (int, error) {
	sql, args := countSQL("courses", "c", d)
	var n int
	err := r.pool.QueryRow(ctx, sql, args...).Scan(&n)
	return n, translate(err, "Course", "")
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	c, err := scanCourse(r.pool.QueryRow(ctx, `SELECT `+courseColumns+` FROM `+courseFrom+` WHERE c.id = $1`, id), true)
	if err != nil {
		return nil, translate(err, "Course", id)
	}
	return c, nil
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO courses (title, description, weeks, tuition, minimum_skill,
			scholarship_available, bootcamp_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill,
		c.ScholarshipAvailable, c.BootcampID, c.UserID)
	return translate(row.Scan(&c.ID, &c.CreatedAt), "Course", "")
}

func (r *CourseRepository) Update(ctx context.Context, c *entity.Course) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE courses
		SET title = $1, description = $2, weeks = $3, tuition = $4, minimum_skill = $5,
			scholarship_available = $6, bootcamp_id = $7
		WHERE id = $8
	`, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill,
		c.ScholarshipAvailable, c.BootcampID, c.ID)
	if err != nil {
		return translate(err, "Course", c.ID)
	}
	if res.RowsAffected() == 0 {
		return notFound("Course", c.ID)
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return translate(err, "Course", id)
	}
	if res.RowsAffected() == 0 {
		return notFound("Course", id)
	}
	return nil
}

func (r *CourseRepository) AverageTuition(ctx context.Context, bootcampID string) (*float64, error) {
	var avg *float64
	err := r.pool.QueryRow(ctx, `SELECT AVG(tuition) FROM courses WHERE bootcamp_id = $1`, bootcampID).Scan(&avg)
	if err != nil {
		return nil, translate(err, "Course", bootcampID)
	}
	return avg, nil
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
