package usersvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ngocdai99/furniture-backend/internal/service/models/apperror"
	"github.com/ngocdai99/furniture-backend/internal/service/models/user"
	"github.com/ngocdai99/furniture-backend/pkg/http/middleware/auth"
)

var testSecret = []byte("test-secret")

// MockUserRepository is a mock implementation of the user repository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Insert(ctx context.Context, u user.User) (*user.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u user.User) (*user.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

// MockMailer is a mock implementation of the mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func newTestService(repo *MockUserRepository) *UserService {
	return MustNewUserService(
		WithUserRepository(repo),
		WithSecret(testSecret, time.Hour),
	)
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := &MockUserRepository{}
	svc := newTestService(repo)

	repo.On("GetByEmail", mock.Anything, "dai@example.com").Return(nil, nil)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(u user.User) bool {
		if u.PasswordHash == "secret123" {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")) == nil
	})).Return(&user.User{ID: 7, Name: "Dai", Email: "dai@example.com"}, nil)

	created, err := svc.Register(context.Background(), "Dai", "dai@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	repo.AssertExpectations(t)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	repo := &MockUserRepository{}
	svc := newTestService(repo)

	repo.On("GetByEmail", mock.Anything, "dai@example.com").
		Return(&user.User{ID: 7, Email: "dai@example.com"}, nil)

	_, err := svc.Register(context.Background(), "Dai", "dai@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.AsError(err).Kind)

	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := &MockUserRepository{}
	svc := newTestService(repo)

	repo.On("GetByEmail", mock.Anything, "dai@example.com").
		Return(&user.User{ID: 7, Email: "dai@example.com", PasswordHash: string(hash)}, nil)

	usr, tokens, err := svc.Login(context.Background(), "dai@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, int64(7), usr.ID)
	require.NotEmpty(t, tokens.Token)
	require.NotEmpty(t, tokens.RefreshToken)

	claims, err := auth.Verify(tokens.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "dai@example.com", claims.Email)
}

func TestLogin_WrongPasswordRejected(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := &MockUserRepository{}
	svc := newTestService(repo)

	repo.On("GetByEmail", mock.Anything, "dai@example.com").
		Return(&user.User{ID: 7, Email: "dai@example.com", PasswordHash: string(hash)}, nil)

	_, _, err = svc.Login(context.Background(), "dai@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperror.KindAuthInvalid, apperror.AsError(err).Kind)
}

func TestLogin_UnknownEmailIndistinguishable(t *testing.T) {
	repo := &MockUserRepository{}
	svc := newTestService(repo)

	repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, apperror.KindAuthInvalid, apperror.AsError(err).Kind)
	assert.Equal(t, "wrong email or password", apperror.AsError(err).Message)
}

func TestUpdateProfile_AppliesOnlyProvidedFields(t *testing.T) {
	repo := &MockUserRepository{}
	svc := newTestService(repo)

	repo.On("GetByID", mock.Anything, int64(7)).
		Return(&user.User{ID: 7, Name: "Dai", Email: "dai@example.com", Age: 20}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u user.User) bool {
		return u.Name == "Dai Ngoc" && u.Age == 20 && u.Email == "dai@example.com"
	})).Return(&user.User{ID: 7, Name: "Dai Ngoc", Email: "dai@example.com", Age: 20}, nil)

	name := "Dai Ngoc"
	updated, err := svc.UpdateProfile(context.Background(), 7, UpdateProfileParams{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Dai Ngoc", updated.Name)
	repo.AssertExpectations(t)
}

func TestSendMail_DelegatesToMailer(t *testing.T) {
	repo := &MockUserRepository{}
	mailSender := &MockMailer{}
	svc := MustNewUserService(
		WithUserRepository(repo),
		WithSecret(testSecret, time.Hour),
		WithMailer(mailSender),
	)

	mailSender.On("Send", "dai@example.com", "Hello", "Welcome").Return(nil)

	require.NoError(t, svc.SendMail(context.Background(), "dai@example.com", "Hello", "Welcome"))
	mailSender.AssertExpectations(t)
}

func TestSendMail_MissingRecipientRejected(t *testing.T) {
	svc := newTestService(&MockUserRepository{})

	err := svc.SendMail(context.Background(), "", "Hello", "Welcome")
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.AsError(err).Kind)
}
