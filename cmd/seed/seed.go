package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devcamper-api/internal/application"
	"github.com/oksasatya/devcamper-api/internal/domain/entity"
)

// Seed files reference users by email and bootcamps by name, so they
// stay valid whatever ids the store assigns.

type userSeed struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     entity.Role `json:"role"`
}

type bootcampSeed struct {
	User          string   `json:"user"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Website       string   `json:"website"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	Address       string   `json:"address"`
	Careers       []string `json:"careers"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	JobGuarantee  bool     `json:"jobGuarantee"`
	AcceptGi      bool     `json:"acceptGi"`
}

type courseSeed struct {
	Bootcamp             string       `json:"bootcamp"`
	User                 string       `json:"user"`
	Title                string       `json:"title"`
	Description          string       `json:"description"`
	Weeks                int          `json:"weeks"`
	Tuition              float64      `json:"tuition"`
	MinimumSkill         entity.Skill `json:"minimumSkill"`
	ScholarshipAvailable bool         `json:"scholarshipAvailable"`
}

type reviewSeed struct {
	Bootcamp string `json:"bootcamp"`
	User     string `json:"user"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Rating   int    `json:"rating"`
}

type userByEmail interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

type seeder struct {
	Users     *application.UserService
	Lookup    userByEmail
	Bootcamps *application.BootcampService
	Courses   *application.CourseService
	Reviews   *application.ReviewService
	Logger    *logrus.Logger

	principals map[string]entity.Principal // by email
	bootcampID map[string]string           // by name
}

// Import loads the seed files from dir in dependency order. Missing files are skipped.
func (s *seeder) Import(ctx context.Context, dir string) error {
	s.principals = map[string]entity.Principal{}
	s.bootcampID = map[string]string{}

	var users []userSeed
	if err := readSeed(dir, "users.json", &users); err != nil {
		return err
	}
	for _, u := range users {
		created, err := s.Users.Create(ctx, application.UserInput{
			Name: u.Name, Email: u.Email, Password: u.Password, Role: u.Role, IsEmailConfirmed: true,
		})
		if err != nil {
			return fmt.Errorf("user %s: %w", u.Email, err)
		}
		s.principals[created.Email] = created.Principal()
	}

	var bootcamps []bootcampSeed
	if err := readSeed(dir, "bootcamps.json", &bootcamps); err != nil {
		return err
	}
	for _, b := range bootcamps {
		p, err := s.principal(ctx, b.User)
		if err != nil {
			return err
		}
		created, err := s.Bootcamps.Create(ctx, p, application.BootcampInput{
			Name: b.Name, Description: b.Description, Website: b.Website, Phone: b.Phone, Email: b.Email,
			Address: b.Address, Careers: b.Careers, Housing: b.Housing, JobAssistance: b.JobAssistance,
			JobGuarantee: b.JobGuarantee, AcceptGi: b.AcceptGi,
		})
		if err != nil {
			return fmt.Errorf("bootcamp %s: %w", b.Name, err)
		}
		s.bootcampID[created.Name] = created.ID
	}

	var courses []courseSeed
	if err := readSeed(dir, "courses.json", &courses); err != nil {
		return err
	}
	for _, c := range courses {
		p, bootcampID, err := s.refs(ctx, c.User, c.Bootcamp)
		if err != nil {
			return err
		}
		if _, err := s.Courses.Create(ctx, p, bootcampID, application.CourseInput{
			Title: c.Title, Description: c.Description, Weeks: c.Weeks, Tuition: c.Tuition,
			MinimumSkill: c.MinimumSkill, ScholarshipAvailable: c.ScholarshipAvailable,
		}); err != nil {
			return fmt.Errorf("course %s: %w", c.Title, err)
		}
	}

	var reviews []reviewSeed
	if err := readSeed(dir, "reviews.json", &reviews); err != nil {
		return err
	}
	for _, r := range reviews {
		p, bootcampID, err := s.refs(ctx, r.User, r.Bootcamp)
		if err != nil {
			return err
		}
		if _, err := s.Reviews.Create(ctx, p, bootcampID, application.ReviewInput{
			Title: r.Title, Text: r.Text, Rating: r.Rating,
		}); err != nil {
			return fmt.Errorf("review %s: %w", r.Title, err)
		}
	}

	s.Logger.WithFields(logrus.Fields{
		"users": len(users), "bootcamps": len(bootcamps), "courses": len(courses), "reviews": len(reviews),
	}).Info("seed files imported")
	return nil
}

func (s *seeder) principal(ctx context.Context, email string) (entity.Principal, error) {
	if p, ok := s.principals[email]; ok {
		return p, nil
	}
	u, err := s.Lookup.GetByEmail(ctx, email)
	if err != nil {
		return entity.Principal{}, fmt.Errorf("user %s: %w", email, err)
	}
	s.principals[email] = u.Principal()
	return u.Principal(), nil
}

func (s *seeder) refs(ctx context.Context, email, bootcamp string) (entity.Principal, string, error) {
	p, err := s.principal(ctx, email)
	if err != nil {
		return entity.Principal{}, "", err
	}
	id, ok := s.bootcampID[bootcamp]
	if !ok {
		return entity.Principal{}, "", fmt.Errorf("unknown bootcamp %q", bootcamp)
	}
	return p, id, nil
}

func readSeed(dir, name string, dst any) error {
	b, err := os.ReadFile(filepath.Join(dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
