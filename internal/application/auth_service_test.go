package application

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
)

var (
	confirmLink = regexp.MustCompile(`/api/v1/auth/confirmemail/([0-9a-f]+\.[0-9a-f]+)`)
	resetLink   = regexp.MustCompile(`/api/v1/auth/resetpassword/([0-9a-f]+)`)
)

func linkToken(t *testing.T, re *regexp.Regexp, body string) string {
	t.Helper()
	m := re.FindStringSubmatch(body)
	if m == nil {
		t.Fatalf("no token link in %q", body)
	}
	return m[1]
}

func register(t *testing.T, f *fixture, email string) *entity.User {
	t.Helper()
	ctx := context.Background()
	if _, err := f.auth.Register(ctx, RegisterInput{Name: "John Doe", Email: email, Password: "123456", Role: entity.RolePublisher}); err != nil {
		t.Fatalf("register: %v", err)
	}
	u, err := memUsers{f.db}.GetByEmail(ctx, email)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	f := newFixture()
	_, err := f.auth.Register(context.Background(), RegisterInput{Name: "x", Email: "x@example.com", Password: "123456", Role: entity.RoleAdmin})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("got %v, want validation", err)
	}
	if len(f.mail.sent) != 0 {
		t.Errorf("mail sent for rejected registration")
	}
}

func TestPasswordsLongerThanBcryptAllows(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	long := strings.Repeat("a", 80)

	_, err := f.auth.Register(ctx, RegisterInput{Name: "x", Email: "long@example.com", Password: long})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("register: got %v, want validation", err)
	}
	if _, err := (memUsers{f.db}).GetByEmail(ctx, "long@example.com"); err == nil {
		t.Error("user stored despite rejected password")
	}

	u := register(t, f, "john@example.com")
	if _, err := f.auth.UpdatePassword(ctx, u.ID, "123456", long); !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("update password: got %v, want validation", err)
	}
	if _, err := f.users.Create(ctx, UserInput{Name: "y", Email: "y@example.com", Password: long, Role: entity.RoleUser}); !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("admin create: got %v, want validation", err)
	}
}

func TestConfirmEmailRoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := register(t, f, "john@example.com")

	msg := f.mail.last()
	if msg.To != "john@example.com" || msg.Subject == "" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if u.ConfirmEmailToken == "" || u.ConfirmEmailExpire == nil {
		t.Fatalf("confirm token not stored")
	}

	_, err := f.auth.Login(ctx, "john@example.com", "123456")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("login before confirm: got %v, want unauthorized", err)
	}

	if _, err := f.auth.ConfirmEmail(ctx, "not-a-token"); !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("malformed token: got %v", err)
	}

	tok := linkToken(t, confirmLink, msg.Text)
	sess, err := f.auth.ConfirmEmail(ctx, tok)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if sess.Token == "" {
		t.Errorf("no session token")
	}

	// single use
	if _, err := f.auth.ConfirmEmail(ctx, tok); !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("second confirm: got %v", err)
	}

	if _, err := f.auth.Login(ctx, "JOHN@example.com ", "123456"); err != nil {
		t.Fatalf("login after confirm: %v", err)
	}
	if _, err := f.auth.ResendConfirmation(ctx, "john@example.com"); !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("resend after confirm: got %v", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	register(t, f, "john@example.com")

	for _, tc := range []struct{ email, password string }{
		{"john@example.com", "wrong"},
		{"nobody@example.com", "123456"},
		{"", "123456"},
	} {
		_, err := f.auth.Login(ctx, tc.email, tc.password)
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("Login(%q): got %v, want validation", tc.email, err)
		}
	}
}

func TestResetPassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := register(t, f, "john@example.com")

	if err := f.auth.ForgotPassword(ctx, "nobody@example.com"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("unknown email: got %v", err)
	}
	if err := f.auth.ForgotPassword(ctx, "john@example.com"); err != nil {
		t.Fatalf("forgot: %v", err)
	}
	tok := linkToken(t, resetLink, f.mail.last().Text)

	t.Run("expired token", func(t *testing.T) {
		f.auth.now = func() time.Time { return time.Now().Add(time.Hour) }
		defer func() { f.auth.now = time.Now }()

		_, err := f.auth.ResetPassword(ctx, tok, "new-secret")
		if !errors.Is(err, apperror.ErrNotFound) {
			t.Fatalf("got %v, want not found", err)
		}
		after, _ := f.users.Get(ctx, u.ID)
		if after.Password != u.Password {
			t.Errorf("password changed by expired token")
		}
	})

	t.Run("valid token", func(t *testing.T) {
		if _, err := f.auth.ResetPassword(ctx, tok, "new-secret"); err != nil {
			t.Fatalf("reset: %v", err)
		}
		after, _ := f.users.Get(ctx, u.ID)
		if after.Password == u.Password || after.ResetPasswordToken != "" {
			t.Errorf("reset not applied: %+v", after)
		}
		if _, err := f.auth.ResetPassword(ctx, tok, "again"); !errors.Is(err, apperror.ErrNotFound) {
			t.Errorf("reused token: got %v", err)
		}
	})
}

func TestForgotPasswordMailFailureClearsToken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := register(t, f, "john@example.com")
	f.mail.fail = true

	err := f.auth.ForgotPassword(ctx, "john@example.com")
	if !errors.Is(err, apperror.ErrUpstream) {
		t.Fatalf("got %v, want upstream", err)
	}
	if apperror.PublicMessage(err) != "Reset Email could not be sent" {
		t.Errorf("message = %q", apperror.PublicMessage(err))
	}
	after, _ := f.users.Get(ctx, u.ID)
	if after.ResetPasswordToken != "" || after.ResetPasswordExpire != nil {
		t.Errorf("reset token left behind: %+v", after)
	}
}

func TestRegisterMailFailureClearsConfirmToken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.mail.fail = true

	_, err := f.auth.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "123456"})
	if !errors.Is(err, apperror.ErrUpstream) {
		t.Fatalf("got %v, want upstream", err)
	}
	u, err := memUsers{f.db}.GetByEmail(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("user not kept: %v", err)
	}
	if u.ConfirmEmailToken != "" || u.Role != entity.RoleUser {
		t.Errorf("unexpected user state: %+v", u)
	}
}

func TestUpdatePasswordChecksCurrent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := register(t, f, "john@example.com")

	if _, err := f.auth.UpdatePassword(ctx, u.ID, "wrong", "next-secret"); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("got %v, want unauthorized", err)
	}
	if _, err := f.auth.UpdatePassword(ctx, u.ID, "123456", "next-secret"); err != nil {
		t.Fatalf("update password: %v", err)
	}
}
