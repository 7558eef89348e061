package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/devconnect-io/devconnect/adapters/event"
	userDomain "github.com/devconnect-io/devconnect/internal/domain/user"
	"github.com/devconnect-io/devconnect/pkg/apperror"
	pkgauth "github.com/devconnect-io/devconnect/pkg/auth"
	"github.com/devconnect-io/devconnect/pkg/logger"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]userDomain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]userDomain.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			c := u
			return &c, nil
		}
	}
	return nil, userDomain.ErrNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, userDomain.ErrNotFound
	}
	c := u
	return &c, nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type nopPublisher struct{}

func (nopPublisher) PublishProfileEvent(context.Context, event.ProfileEventPayload) error { return nil }
func (nopPublisher) PublishUserEvent(context.Context, event.UserEventPayload) error      { return nil }

func TestRegisterThenLogin(t *testing.T) {
	repo := newMemUserRepo()
	jwtSvc := pkgauth.NewJWTService("test-secret", time.Hour)
	registerUC := NewRegisterUseCase(repo, jwtSvc, nopPublisher{}, logger.NewNop())
	loginUC := NewLoginUseCase(repo, jwtSvc, logger.NewNop())

	out, err := registerUC.Execute(context.Background(), RegisterInput{
		Name: "alice", Email: "a@x.com", Password: "pw123456",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, out.Token)

	claims, err := jwtSvc.ValidateToken(out.Token)
	assert.NoError(t, err)

	u, err := repo.FindByID(context.Background(), claims.OwnerID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", u.Name)
	assert.Contains(t, u.Avatar, "gravatar.com/avatar/")
	assert.NotEqual(t, "pw123456", u.PasswordHash)

	loginOut, err := loginUC.Execute(context.Background(), LoginInput{Email: "a@x.com", Password: "pw123456"})
	assert.NoError(t, err)
	assert.NotEmpty(t, loginOut.Token)
}

func TestRegister_ValidationErrors(t *testing.T) {
	repo := newMemUserRepo()
	uc := NewRegisterUseCase(repo, pkgauth.NewJWTService("s", time.Hour), nopPublisher{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), RegisterInput{Name: "", Email: "not-an-email", Password: "123"})
	var ve *apperror.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 3)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	uc := NewRegisterUseCase(repo, pkgauth.NewJWTService("s", time.Hour), nopPublisher{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), RegisterInput{Name: "alice", Email: "a@x.com", Password: "pw123456"})
	assert.NoError(t, err)

	_, err = uc.Execute(context.Background(), RegisterInput{Name: "alice2", Email: "a@x.com", Password: "pw123456"})
	var ve *apperror.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "User already exists", ve.Errors[0].Msg)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := newMemUserRepo()
	jwtSvc := pkgauth.NewJWTService("s", time.Hour)
	registerUC := NewRegisterUseCase(repo, jwtSvc, nopPublisher{}, logger.NewNop())
	loginUC := NewLoginUseCase(repo, jwtSvc, logger.NewNop())

	_, err := registerUC.Execute(context.Background(), RegisterInput{Name: "alice", Email: "a@x.com", Password: "pw123456"})
	assert.NoError(t, err)

	// wrong password and unknown user look identical to the caller
	for _, in := range []LoginInput{
		{Email: "a@x.com", Password: "wrongpass"},
		{Email: "nobody@x.com", Password: "pw123456"},
	} {
		_, err := loginUC.Execute(context.Background(), in)
		var ve *apperror.ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, "Invalid credentials", ve.Errors[0].Msg)
	}
}

func TestLoadUser_GoneIdentity(t *testing.T) {
	repo := newMemUserRepo()
	uc := NewLoadUserUseCase(repo)

	_, err := uc.Execute(context.Background(), LoadUserInput{UserID: uuid.New()})
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
