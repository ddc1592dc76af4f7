package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/gymquest/internal/auth"
	"github.com/2beens/gymquest/internal/telemetry/metrics"
	"github.com/2beens/gymquest/internal/telemetry/tracing"
	"github.com/2beens/gymquest/pkg"

	log "github.com/sirupsen/logrus"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrWrongCredentials is shared with the auth handler, which maps it to a failed login.
	ErrWrongCredentials = auth.ErrWrongCredentials
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=users_test

type usersRepo interface {
	Create(ctx context.Context, user User) (*User, error)
	Get(ctx context.Context, id int) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	IsAdmin(ctx context.Context, id int) (bool, error)
	UpdateProfile(ctx context.Context, id int, update ProfileUpdate) error
	UpsertAdmin(ctx context.Context, username, email, passwordHash string) (int, error)
	Streak(ctx context.Context, id int) (Streak, error)
}

type rankTracker interface {
	Update(ctx context.Context, userID, exp int) error
}

type SignUpRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Password1 string `json:"password1" validate:"required,min=8,max=128"`
	Password2 string `json:"password2" validate:"required"`
}

type ProfileUpdate struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Bio      string `json:"bio" validate:"max=2000"`
}

type Service struct {
	repo           usersRepo
	ranker         rankTracker
	metricsManager *metrics.Manager
}

func NewService(repo usersRepo, ranker rankTracker, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		ranker:         ranker,
		metricsManager: metricsManager,
	}
}

func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "users.signup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := pkg.Validate(req); err != nil {
		return nil, err
	}
	if req.Password1 != req.Password2 {
		return nil, ErrPasswordMismatch
	}

	passwordHash, err := pkg.HashPassword(req.Password1)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Level:        1,
	})
	if err != nil {
		return nil, err
	}

	// the leaderboard row exists already, the ranking set catches up on the next refresh otherwise
	if err := s.ranker.Update(ctx, user.ID, user.Exp); err != nil {
		log.Errorf("signup, add user %d to ranking: %s", user.ID, err)
	}

	s.metricsManager.CounterSignups.Inc()
	log.Debugf("new user signed up: %d [%s]", user.ID, user.Username)
	return user, nil
}

// Authenticate checks the credentials, any mismatch yields ErrWrongCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "users.authenticate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrWrongCredentials
		}
		return nil, err
	}

	if !pkg.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrWrongCredentials
	}
	return user, nil
}

func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (*auth.Principal, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return &auth.Principal{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
	}, nil
}

func (s *Service) Get(ctx context.Context, id int) (*User, error) {
	return s.repo.Get(ctx, id)
}

// Streak returns the user's daily streak as of now.
func (s *Service) Streak(ctx context.Context, id int) (Streak, error) {
	streak, err := s.repo.Streak(ctx, id)
	if err != nil {
		return Streak{}, err
	}
	return streak.AsOf(time.Now()), nil
}

func (s *Service) IsAdmin(ctx context.Context, id int) (bool, error) {
	return s.repo.IsAdmin(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, id int, update ProfileUpdate) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "users.updateProfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	update.Username = strings.TrimSpace(update.Username)
	update.Email = strings.ToLower(strings.TrimSpace(update.Email))
	update.Bio = strings.TrimSpace(update.Bio)
	if err := pkg.Validate(update); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateProfile(ctx, id, update); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// EnsureAdmin makes sure the configured admin account exists with the given password hash.
// A new admin shows up in the ranking after the next leaderboard refresh.
func (s *Service) EnsureAdmin(ctx context.Context, username, email, passwordHash string) error {
	if username == "" || passwordHash == "" {
		return errors.New("admin username and password hash must be set")
	}
	if email == "" {
		email = username + "@gymquest.local"
	}

	id, err := s.repo.UpsertAdmin(ctx, username, email, passwordHash)
	if err != nil {
		return fmt.Errorf("upsert admin: %w", err)
	}
	log.Debugf("admin account [%s] ensured: %d", username, id)
	return nil
}
