package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/query"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
	"github.com/oksasatya/devcamper-api/pkg/helpers"
	"github.com/oksasatya/devcamper-api/pkg/mailer"
)

// memDB is an in-memory stand-in for the four postgres repositories.
// Listing honours filters on plain fields and the page window; rows come
// back in insertion order.
type memDB struct {
	mu        sync.Mutex
	seq       int
	order     map[string]int
	users     map[string]*entity.User
	bootcamps map[string]*entity.Bootcamp
	exclusive map[string]bool
	courses   map[string]*entity.Course
	reviews   map[string]*entity.Review
}

func newMemDB() *memDB {
	return &memDB{
		order:     map[string]int{},
		users:     map[string]*entity.User{},
		bootcamps: map[string]*entity.Bootcamp{},
		exclusive: map[string]bool{},
		courses:   map[string]*entity.Course{},
		reviews:   map[string]*entity.Review{},
	}
}

func (db *memDB) stamp() (string, time.Time) {
	db.seq++
	id := uuid.NewString()
	db.order[id] = db.seq
	return id, time.Date(2024, 1, 1, 0, 0, db.seq, 0, time.UTC)
}

func sortedIDs[T any](db *memDB, m map[string]*T) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return db.order[ids[i]] < db.order[ids[j]] })
	return ids
}

// matches applies eq/in filters by comparing string forms of values.
func matches(d *query.Descriptor, field func(name string) []string) bool {
	for _, f := range d.Filters {
		have := field(f.Field.Name)
		ok := false
		for _, want := range f.Values {
			for _, h := range have {
				if h == fmt.Sprint(want) {
					ok = true
				}
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func window[T any](items []T, d *query.Descriptor) []T {
	start := d.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + d.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// users

type memUsers struct{ db *memDB }

func (r memUsers) filtered(d *query.Descriptor) []entity.User {
	var out []entity.User
	for _, id := range sortedIDs(r.db, r.db.users) {
		u := r.db.users[id]
		if matches(d, func(name string) []string {
			switch name {
			case "role":
				return []string{string(u.Role)}
			case "email":
				return []string{u.Email}
			}
			return nil
		}) {
			out = append(out, *u)
		}
	}
	return out
}

func (r memUsers) List(_ context.Context, d *query.Descriptor) ([]entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return window(r.filtered(d), d), nil
}

func (r memUsers) Count(_ context.Context, d *query.Descriptor) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return len(r.filtered(d)), nil
}

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, other := range r.db.users {
		if other.Email == u.Email {
			return apperror.Conflict("Duplicate field value entered")
		}
	}
	u.ID, u.CreatedAt = r.db.stamp()
	cp := *u
	r.db.users[u.ID] = &cp
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, apperror.NotFound("User not found with id of %s", id)
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) find(pred func(*entity.User) bool) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if pred(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("User not found")
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r memUsers) GetByResetToken(_ context.Context, hash string, now time.Time) (*entity.User, error) {
	return r.find(func(u *entity.User) bool {
		return hash != "" && u.ResetPasswordToken == hash && u.ResetPasswordExpire != nil && u.ResetPasswordExpire.After(now)
	})
}

func (r memUsers) GetByConfirmToken(_ context.Context, hash string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool {
		return hash != "" && u.ConfirmEmailToken == hash && !u.IsEmailConfirmed
	})
}

func (r memUsers) Update(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[u.ID]; !ok {
		return apperror.NotFound("User not found with id of %s", u.ID)
	}
	cp := *u
	r.db.users[u.ID] = &cp
	return nil
}

func (r memUsers) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[id]; !ok {
		return apperror.NotFound("User not found with id of %s", id)
	}
	delete(r.db.users, id)
	return nil
}

// bootcamps

type memBootcamps struct{ db *memDB }

func (r memBootcamps) filtered(d *query.Descriptor) []entity.Bootcamp {
	var out []entity.Bootcamp
	for _, id := range sortedIDs(r.db, r.db.bootcamps) {
		b := r.db.bootcamps[id]
		if matches(d, func(name string) []string {
			switch name {
			case "careers":
				return b.Careers
			case "user":
				return []string{b.UserID}
			case "name":
				return []string{b.Name}
			}
			return nil
		}) {
			out = append(out, *b)
		}
	}
	return out
}

func (r memBootcamps) List(_ context.Context, d *query.Descriptor) ([]entity.Bootcamp, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return window(r.filtered(d), d), nil
}

func (r memBootcamps) Count(_ context.Context, d *query.Descriptor) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return len(r.filtered(d)), nil
}

func (r memBootcamps) GetByID(_ context.Context, id string) (*entity.Bootcamp, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	b, ok := r.db.bootcamps[id]
	if !ok {
		return nil, apperror.NotFound("Bootcamp not found with id of %s", id)
	}
	cp := *b
	return &cp, nil
}

func (r memBootcamps) CountByUser(_ context.Context, userID string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n := 0
	for _, b := range r.db.bootcamps {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r memBootcamps) Create(_ context.Context, b *entity.Bootcamp, exclusive bool) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for id, other := range r.db.bootcamps {
		if other.Name == b.Name || (exclusive && r.db.exclusive[id] && other.UserID == b.UserID) {
			return apperror.Conflict("Duplicate field value entered")
		}
	}
	b.ID, b.CreatedAt = r.db.stamp()
	cp := *b
	r.db.bootcamps[b.ID] = &cp
	r.db.exclusive[b.ID] = exclusive
	return nil
}

func (r memBootcamps) Update(_ context.Context, b *entity.Bootcamp) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cur, ok := r.db.bootcamps[b.ID]
	if !ok {
		return apperror.NotFound("Bootcamp not found with id of %s", b.ID)
	}
	cp := *b
	cp.AverageCost, cp.AverageRating, cp.Photo = cur.AverageCost, cur.AverageRating, cur.Photo
	r.db.bootcamps[b.ID] = &cp
	return nil
}

func (r memBootcamps) UpdatePhoto(_ context.Context, id, photo string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	b, ok := r.db.bootcamps[id]
	if !ok {
		return apperror.NotFound("Bootcamp not found with id of %s", id)
	}
	b.Photo = photo
	return nil
}

func (r memBootcamps) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.bootcamps[id]; !ok {
		return apperror.NotFound("Bootcamp not found with id of %s", id)
	}
	for cid, c := range r.db.courses {
		if c.BootcampID == id {
			delete(r.db.courses, cid)
		}
	}
	for rid, rv := range r.db.reviews {
		if rv.BootcampID == id {
			delete(r.db.reviews, rid)
		}
	}
	delete(r.db.bootcamps, id)
	return nil
}

func (r memBootcamps) WithinRadius(_ context.Context, lat, lng, radius float64) ([]entity.Bootcamp, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []entity.Bootcamp
	for _, id := range sortedIDs(r.db, r.db.bootcamps) {
		b := r.db.bootcamps[id]
		if b.Location.Latitude() == lat && b.Location.Longitude() == lng {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r memBootcamps) SetAverageCost(_ context.Context, id string, cost *int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if b, ok := r.db.bootcamps[id]; ok {
		b.AverageCost = cost
	}
	return nil
}

func (r memBootcamps) SetAverageRating(_ context.Context, id string, rating *int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if b, ok := r.db.bootcamps[id]; ok {
		b.AverageRating = rating
	}
	return nil
}

// courses

type memCourses struct{ db *memDB }

func (r memCourses) filtered(d *query.Descriptor) []entity.Course {
	var out []entity.Course
	for _, id := range sortedIDs(r.db, r.db.courses) {
		c := r.db.courses[id]
		if matches(d, func(name string) []string {
			if name == "bootcampId" {
				return []string{c.BootcampID}
			}
			return nil
		}) {
			out = append(out, *c)
		}
	}
	return out
}

func (r memCourses) List(_ context.Context, d *query.Descriptor) ([]entity.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return window(r.filtered(d), d), nil
}

func (r memCourses) Count(_ context.Context, d *query.Descriptor) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return len(r.filtered(d)), nil
}

func (r memCourses) GetByID(_ context.Context, id string) (*entity.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.courses[id]
	if !ok {
		return nil, apperror.NotFound("Course not found with id of %s", id)
	}
	cp := *c
	return &cp, nil
}

func (r memCourses) Create(_ context.Context, c *entity.Course) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c.ID, c.CreatedAt = r.db.stamp()
	cp := *c
	r.db.courses[c.ID] = &cp
	return nil
}

func (r memCourses) Update(_ context.Context, c *entity.Course) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.courses[c.ID]; !ok {
		return apperror.NotFound("Course not found with id of %s", c.ID)
	}
	cp := *c
	r.db.courses[c.ID] = &cp
	return nil
}

func (r memCourses) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.courses[id]; !ok {
		return apperror.NotFound("Course not found with id of %s", id)
	}
	delete(r.db.courses, id)
	return nil
}

func (r memCourses) AverageTuition(_ context.Context, bootcampID string) (*float64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var sum float64
	n := 0
	for _, c := range r.db.courses {
		if c.BootcampID == bootcampID {
			sum += c.Tuition
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := sum / float64(n)
	return &avg, nil
}

// reviews

type memReviews struct{ db *memDB }

func (r memReviews) filtered(d *query.Descriptor) []entity.Review {
	var out []entity.Review
	for _, id := range sortedIDs(r.db, r.db.reviews) {
		rv := r.db.reviews[id]
		if matches(d, func(name string) []string {
			if name == "bootcampId" {
				return []string{rv.BootcampID}
			}
			return nil
		}) {
			out = append(out, *rv)
		}
	}
	return out
}

func (r memReviews) List(_ context.Context, d *query.Descriptor) ([]entity.Review, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return window(r.filtered(d), d), nil
}

func (r memReviews) Count(_ context.Context, d *query.Descriptor) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return len(r.filtered(d)), nil
}

func (r memReviews) GetByID(_ context.Context, id string) (*entity.Review, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rv, ok := r.db.reviews[id]
	if !ok {
		return nil, apperror.NotFound("Review not found with id of %s", id)
	}
	cp := *rv
	return &cp, nil
}

func (r memReviews) Create(_ context.Context, rv *entity.Review) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, other := range r.db.reviews {
		if other.BootcampID == rv.BootcampID && other.UserID == rv.UserID {
			return apperror.Conflict("Duplicate field value entered")
		}
	}
	rv.ID, rv.CreatedAt = r.db.stamp()
	cp := *rv
	r.db.reviews[rv.ID] = &cp
	return nil
}

func (r memReviews) Update(_ context.Context, rv *entity.Review) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.reviews[rv.ID]; !ok {
		return apperror.NotFound("Review not found with id of %s", rv.ID)
	}
	cp := *rv
	r.db.reviews[rv.ID] = &cp
	return nil
}

func (r memReviews) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.reviews[id]; !ok {
		return apperror.NotFound("Review not found with id of %s", id)
	}
	delete(r.db.reviews, id)
	return nil
}

func (r memReviews) AverageRating(_ context.Context, bootcampID string) (*float64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	sum, n := 0, 0
	for _, rv := range r.db.reviews {
		if rv.BootcampID == bootcampID {
			sum += rv.Rating
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := float64(sum) / float64(n)
	return &avg, nil
}

// collaborators

type stubGeocoder struct {
	loc entity.Location
	err error
}

func (g stubGeocoder) Geocode(context.Context, string) (entity.Location, error) {
	return g.loc, g.err
}

type memFiles struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (f *memFiles) Put(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.files == nil {
		f.files = map[string][]byte{}
	}
	f.files[objectPath] = b
	return "/uploads/" + objectPath, nil
}

type memMail struct {
	mu   sync.Mutex
	sent []mailer.Message
	fail bool
}

func (m *memMail) Send(_ context.Context, msg mailer.Message) error {
	if m.fail {
		return errors.New("smtp down")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *memMail) last() mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return mailer.Message{}
	}
	return m.sent[len(m.sent)-1]
}

// fixture wires every service over one memDB.
type fixture struct {
	db        *memDB
	mail      *memMail
	files     *memFiles
	rc        *Recomputer
	auth      *AuthService
	users     *UserService
	bootcamps *BootcampService
	courses   *CourseService
	reviews   *ReviewService
}

var boston = entity.Location{Type: "Point", Coordinates: [2]float64{-71.104028, 42.350846}, City: "Boston", State: "MA", Zipcode: "02215"}

func newFixture() *fixture {
	db := newMemDB()
	logger := helpers.NewNopLogger()
	f := &fixture{db: db, mail: &memMail{}, files: &memFiles{}}
	f.rc = NewRecomputer(memBootcamps{db}, memCourses{db}, memReviews{db}, logger, time.Second)
	f.auth = NewAuthService(memUsers{db}, helpers.NewJWTManager("test-secret", time.Hour),
		helpers.NewTokenIssuer(10*time.Minute), f.mail,
		Links{AppName: "DevCamper", CompanyName: "DevCamper", BaseURL: "http://api.test"}, logger)
	f.users = NewUserService(memUsers{db})
	f.bootcamps = NewBootcampService(memBootcamps{db}, stubGeocoder{loc: boston}, f.files, nil, logger, 1000)
	f.courses = NewCourseService(memCourses{db}, memBootcamps{db}, f.rc)
	f.reviews = NewReviewService(memReviews{db}, memBootcamps{db}, f.rc)
	return f
}

func publisher(id string) entity.Principal { return entity.Principal{ID: id, Role: entity.RolePublisher} }

func admin(id string) entity.Principal { return entity.Principal{ID: id, Role: entity.RoleAdmin} }

func (f *fixture) bootcamp(p entity.Principal, name string) *entity.Bootcamp {
	b, err := f.bootcamps.Create(context.Background(), p, BootcampInput{
		Name: name, Description: "desc", Address: "233 Bay State Rd Boston MA 02215",
		Careers: []string{"Web Development"},
	})
	if err != nil {
		panic(err)
	}
	return b
}
