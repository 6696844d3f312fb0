package usersvc

import (
	"context"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ngocdai99/furniture-backend/internal/dal/postgres"
	userrepo "github.com/ngocdai99/furniture-backend/internal/dal/repositories/user/postgres"
	"github.com/ngocdai99/furniture-backend/internal/service/models/apperror"
	"github.com/ngocdai99/furniture-backend/internal/service/models/user"
	"github.com/ngocdai99/furniture-backend/pkg/http/middleware/auth"
	"github.com/spf13/viper"
)

type userRepository interface {
	Insert(ctx context.Context, u user.User) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Update(ctx context.Context, u user.User) (*user.User, error)
}

type mailer interface {
	Send(to, subject, body string) error
}

// UserService handles registration, login and profile management.
type UserService struct {
	pgClient *postgres.Client

	userRepo userRepository
	mail     mailer

	secret   []byte
	tokenTTL time.Duration
}

// option is a function that configures the UserService.
type option func(*UserService)

// MustNewUserService creates a new UserService.
func MustNewUserService(opts ...option) *UserService {
	s := &UserService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.userRepo == nil {
		if s.pgClient == nil {
			panic("usersvc: postgres client is required")
		}
		s.userRepo = userrepo.NewPostgresUserRepository(s.pgClient.Pool())
	}
	if s.secret == nil {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			panic("usersvc: JWT_SECRET is required")
		}
		s.secret = []byte(secret)
	}
	if s.tokenTTL == 0 {
		s.tokenTTL = viper.GetDuration("auth.token_ttl")
		if s.tokenTTL == 0 {
			s.tokenTTL = time.Hour
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the UserService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *UserService) {
		s.pgClient = pgClient
	}
}

// WithUserRepository overrides the user repository, mainly for tests.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUserRepository(repo userRepository) option {
	return func(s *UserService) {
		s.userRepo = repo
	}
}

// WithMailer sets the mailer used by SendMail.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMailer(m mailer) option {
	return func(s *UserService) {
		s.mail = m
	}
}

// WithSecret overrides the token signing secret, mainly for tests.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSecret(secret []byte, ttl time.Duration) option {
	return func(s *UserService) {
		s.secret = secret
		s.tokenTTL = ttl
	}
}

// Register creates a user with a bcrypt-hashed password. Emails are unique.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*user.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperror.Validation("name, email and password are required")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.userRepo.Insert(ctx, user.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Login checks the credentials and issues an access and a refresh token.
// Wrong email and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*user.User, *TokenPair, error) {
	if email == "" || password == "" {
		return nil, nil, apperror.Validation("email and password are required")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if existing == nil {
		return nil, nil, apperror.AuthInvalid("wrong email or password", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperror.AuthInvalid("wrong email or password", nil)
	}

	token, err := auth.NewToken(existing.ID, existing.Email, s.secret, s.tokenTTL)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := auth.NewToken(existing.ID, existing.Email, s.secret, s.tokenTTL)
	if err != nil {
		return nil, nil, err
	}

	return existing, &TokenPair{Token: token, RefreshToken: refreshToken}, nil
}

// GetUser returns one user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*user.User, error) {
	existing, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.NotFound("user not found")
	}

	return existing, nil
}

// UpdateProfileParams carries the optional profile fields; nil means keep the
// stored value.
type UpdateProfileParams struct {
	Name     *string
	Image    *string
	Password *string
	Age      *int
	Address  *string
}

// UpdateProfile applies the provided fields to an existing user.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, params UpdateProfileParams) (*user.User, error) {
	existing, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.NotFound("user not found")
	}

	if params.Name != nil {
		existing.Name = *params.Name
	}
	if params.Image != nil {
		existing.Image = *params.Image
	}
	if params.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		existing.PasswordHash = string(hash)
	}
	if params.Age != nil {
		existing.Age = *params.Age
	}
	if params.Address != nil {
		existing.Address = *params.Address
	}

	updated, err := s.userRepo.Update(ctx, *existing)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NotFound("user not found")
	}

	return updated, nil
}

// SendMail delivers one message to the given address.
func (s *UserService) SendMail(ctx context.Context, to, subject, body string) error {
	if to == "" || subject == "" {
		return apperror.Validation("recipient and subject are required")
	}
	if s.mail == nil {
		return apperror.Validation("mail delivery is not configured")
	}

	return s.mail.Send(to, subject, body)
}
