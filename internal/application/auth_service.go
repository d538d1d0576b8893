package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
	"github.com/oksasatya/devcamper-api/pkg/helpers"
	"github.com/oksasatya/devcamper-api/pkg/mailer"
	"github.com/oksasatya/devcamper-api/pkg/mailer/templates"
)

// Session is a freshly issued session token.
type Session struct {
	Token   string
	Expires time.Time
}

// Links holds what outgoing emails need to build absolute URLs.
type Links struct {
	AppName     string
	CompanyName string
	BaseURL     string // e.g. https://api.example.com
}

type AuthService struct {
	Users  repository.UserRepository
	JWT    *helpers.JWTManager
	Tokens *helpers.TokenIssuer
	Mail   EmailSender
	Links  Links
	Logger *logrus.Logger

	now func() time.Time
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, tokens *helpers.TokenIssuer, mail EmailSender, links Links, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Tokens: tokens, Mail: mail, Links: links, Logger: logger, now: time.Now}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

// Register creates the account, mails a confirmation link and signs the user in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (Session, error) {
	if in.Role == "" {
		in.Role = entity.RoleUser
	}
	if in.Role == entity.RoleAdmin || !in.Role.Valid() {
		return Session{}, apperror.Validation("role must be user or publisher")
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return Session{}, err
	}
	u := &entity.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    normalizeEmail(in.Email),
		Role:     in.Role,
		Password: hash,
	}
	u.Avatar = helpers.GravatarURL(u.Email)
	if err := s.Users.Create(ctx, u); err != nil {
		return Session{}, err
	}
	if err := s.sendConfirmation(ctx, u); err != nil {
		return Session{}, err
	}
	return s.session(u)
}

// ResendConfirmation issues a new confirmation token for an unconfirmed account.
func (s *AuthService) ResendConfirmation(ctx context.Context, email string) (Session, error) {
	if strings.TrimSpace(email) == "" {
		return Session{}, apperror.Validation("Please provide an email")
	}
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return Session{}, err
	}
	if err := s.sendConfirmation(ctx, u); err != nil {
		return Session{}, err
	}
	return s.session(u)
}

// sendConfirmation stores a confirmation token hash on u and mails the link.
// On delivery failure the token is withdrawn.
func (s *AuthService) sendConfirmation(ctx context.Context, u *entity.User) error {
	if u.IsEmailConfirmed {
		return apperror.Validation("User %s is already verified", u.ID)
	}
	tok, err := s.Tokens.IssueConfirmation()
	if err != nil {
		return err
	}
	u.ConfirmEmailToken = tok.Hash
	u.ConfirmEmailExpire = &tok.Expiry
	if err := s.Users.Update(ctx, u); err != nil {
		return err
	}

	url := s.Links.BaseURL + "/api/v1/auth/confirmemail/" + tok.Plain
	if err := s.mail(ctx, templates.ConfirmEmail, u, url, tok.Expiry); err != nil {
		u.ClearConfirmToken()
		if uErr := s.Users.Update(ctx, u); uErr != nil {
			s.Logger.WithError(uErr).WithField("user_id", u.ID).Error("clear confirm token failed")
		}
		return apperror.Upstream(err, "Email Confirmation could not be sent")
	}
	return nil
}

// ConfirmEmail marks the account owning token as confirmed and signs it in.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (Session, error) {
	if !helpers.WellFormedConfirmation(token) {
		return Session{}, apperror.Validation("Invalid Token")
	}
	u, err := s.Users.GetByConfirmToken(ctx, helpers.HashToken(token))
	if errors.Is(err, apperror.ErrNotFound) {
		return Session{}, apperror.Validation("Invalid Token")
	}
	if err != nil {
		return Session{}, err
	}
	if u.ConfirmEmailExpire == nil || !u.ConfirmEmailExpire.After(s.now()) {
		return Session{}, apperror.Validation("Invalid Token")
	}
	u.ClearConfirmToken()
	u.IsEmailConfirmed = true
	if err := s.Users.Update(ctx, u); err != nil {
		return Session{}, err
	}
	return s.session(u)
}

// Login checks credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Session{}, apperror.Validation("Please provide an email and password")
	}
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, apperror.ErrNotFound) {
		return Session{}, apperror.Validation("Invalid credentials")
	}
	if err != nil {
		return Session{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return Session{}, apperror.Validation("Invalid credentials")
	}
	if !u.IsEmailConfirmed {
		return Session{}, apperror.Unauthorized("Email is not verified. Verify your email first.")
	}
	return s.session(u)
}

func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	return s.Users.GetByID(ctx, userID)
}

// UpdateDetails changes name and/or email; the avatar follows the email.
func (s *AuthService) UpdateDetails(ctx context.Context, userID string, name, email *string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		u.Name = strings.TrimSpace(*name)
	}
	if email != nil {
		u.Email = normalizeEmail(*email)
		u.Avatar = helpers.GravatarURL(u.Email)
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, userID, current, next string) (Session, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, current) {
		return Session{}, apperror.Unauthorized("Password is incorrect")
	}
	if u.Password, err = helpers.HashPassword(next); err != nil {
		return Session{}, err
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return Session{}, err
	}
	return s.session(u)
}

// ForgotPassword stores a reset token hash and mails the plain token.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.NotFound("There is no user with email %s", email)
	}
	if err != nil {
		return err
	}
	tok, err := s.Tokens.Issue()
	if err != nil {
		return err
	}
	u.ResetPasswordToken = tok.Hash
	u.ResetPasswordExpire = &tok.Expiry
	if err := s.Users.Update(ctx, u); err != nil {
		return err
	}

	url := s.Links.BaseURL + "/api/v1/auth/resetpassword/" + tok.Plain
	if err := s.mail(ctx, templates.ResetPassword, u, url, tok.Expiry); err != nil {
		u.ClearResetToken()
		if uErr := s.Users.Update(ctx, u); uErr != nil {
			s.Logger.WithError(uErr).WithField("user_id", u.ID).Error("clear reset token failed")
		}
		return apperror.Upstream(err, "Reset Email could not be sent")
	}
	return nil
}

// ResetPassword consumes an unexpired reset token and sets a new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) (Session, error) {
	u, err := s.Users.GetByResetToken(ctx, helpers.HashToken(token), s.now())
	if errors.Is(err, apperror.ErrNotFound) {
		return Session{}, apperror.NotFound("Invalid request")
	}
	if err != nil {
		return Session{}, err
	}
	if u.Password, err = helpers.HashPassword(password); err != nil {
		return Session{}, err
	}
	u.ClearResetToken()
	if err := s.Users.Update(ctx, u); err != nil {
		return Session{}, err
	}
	return s.session(u)
}

func (s *AuthService) session(u *entity.User) (Session, error) {
	tok, exp, err := s.JWT.IssueSessionToken(u.ID)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: tok, Expires: exp}, nil
}

func (s *AuthService) mail(ctx context.Context, tmpl string, u *entity.User, url string, exp time.Time) error {
	data := templates.NewEmailData(s.Links.AppName, s.Links.CompanyName, u.Name, u.Email,
		templates.WithActionURL(url), templates.WithExpiresAt(exp))
	subject, text, html, err := templates.Render(tmpl, data)
	if err != nil {
		return err
	}
	return s.Mail.Send(ctx, mailer.Message{To: u.Email, Subject: subject, Text: text, HTML: html})
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
