package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	profileDomain "github.com/devconnect-io/devconnect/internal/domain/profile"
	userDomain "github.com/devconnect-io/devconnect/internal/domain/user"
	"github.com/devconnect-io/devconnect/pkg/logger"
)

type ProfileRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	profileRepo profileDomain.Repository
	userRepo    userDomain.Repository
	testOwner   *userDomain.User
}

func (s *ProfileRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.profileRepo = NewPostgresProfileRepo(s.dbPool, logger.NewNop())
	s.userRepo = NewPostgresUserRepo(s.dbPool)

	s.testOwner = &userDomain.User{
		ID:           uuid.New(),
		Name:         "alice",
		Email:        "alice@example.com",
		PasswordHash: "hashedpassword",
	}
	if err := s.userRepo.Create(ctx, s.testOwner); err != nil {
		s.T().Fatalf("Failed to seed owner: %s", err)
	}
}

func (s *ProfileRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestProfileRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(ProfileRepoIntegrationTestSuite))
}

func (s *ProfileRepoIntegrationTestSuite) seedOwner(email string) uuid.UUID {
	owner := &userDomain.User{
		ID:           uuid.New(),
		Name:         "owner",
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	s.Require().NoError(s.userRepo.Create(context.Background(), owner))
	return owner.ID
}

func (s *ProfileRepoIntegrationTestSuite) Test_Upsert_And_GetByOwnerID() {
	ctx := context.Background()

	p := &profileDomain.Profile{
		OwnerID:        s.testOwner.ID,
		Company:        "Acme",
		Status:         "Developer",
		Skills:         []string{"go", "rust"},
		GithubUsername: "alice",
		Social:         profileDomain.Social{Twitter: "https://twitter.com/alice"},
		Experience: []profileDomain.Experience{
			{ID: uuid.New(), Title: "Eng", Company: "Acme", From: "2020-01-01", Current: true},
		},
		UpdatedAt: time.Now().UTC(),
	}

	s.NoError(s.profileRepo.Upsert(ctx, p))

	found, err := s.profileRepo.GetByOwnerID(ctx, s.testOwner.ID)
	s.NoError(err)
	s.Equal("Developer", found.Status)
	s.Equal([]string{"go", "rust"}, found.Skills)
	s.Equal("https://twitter.com/alice", found.Social.Twitter)
	s.Require().Len(found.Experience, 1)
	s.Equal(p.Experience[0].ID, found.Experience[0].ID)
	s.Equal("Eng", found.Experience[0].Title)
	s.Empty(found.Education)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Upsert_ReplacesDocument() {
	ctx := context.Background()
	ownerID := s.seedOwner("replace@example.com")

	first := &profileDomain.Profile{
		OwnerID: ownerID, Status: "Junior Developer", Skills: []string{"go"},
		Company: "Acme", UpdatedAt: time.Now().UTC(),
	}
	s.NoError(s.profileRepo.Upsert(ctx, first))

	second := &profileDomain.Profile{
		OwnerID: ownerID, Status: "Senior Developer", Skills: []string{"go", "sql"},
		UpdatedAt: time.Now().UTC(),
	}
	s.NoError(s.profileRepo.Upsert(ctx, second))

	found, err := s.profileRepo.GetByOwnerID(ctx, ownerID)
	s.NoError(err)
	s.Equal("Senior Developer", found.Status)
	s.Equal([]string{"go", "sql"}, found.Skills)
	// the row is written whole, so the unsent company is gone
	s.Empty(found.Company)
}

func (s *ProfileRepoIntegrationTestSuite) Test_List() {
	ctx := context.Background()
	ownerID := s.seedOwner("list@example.com")

	p := &profileDomain.Profile{
		OwnerID: ownerID, Status: "Developer", Skills: []string{"go"},
		UpdatedAt: time.Now().UTC(),
	}
	s.NoError(s.profileRepo.Upsert(ctx, p))

	profiles, err := s.profileRepo.List(ctx)
	s.NoError(err)

	var seen bool
	for _, got := range profiles {
		if got.OwnerID == ownerID {
			seen = true
			s.Equal("Developer", got.Status)
		}
	}
	s.True(seen, "expected listed profile for %s", ownerID)
}

func (s *ProfileRepoIntegrationTestSuite) Test_GetByOwnerID_NotFound() {
	_, err := s.profileRepo.GetByOwnerID(context.Background(), uuid.New())
	s.ErrorIs(err, profileDomain.ErrNotFound)
}

func (s *ProfileRepoIntegrationTestSuite) Test_DeletingUserCascadesProfile() {
	ctx := context.Background()
	ownerID := s.seedOwner("cascade@example.com")

	p := &profileDomain.Profile{
		OwnerID: ownerID, Status: "Developer", Skills: []string{"go"},
		UpdatedAt: time.Now().UTC(),
	}
	s.NoError(s.profileRepo.Upsert(ctx, p))

	s.NoError(s.userRepo.Delete(ctx, ownerID))

	_, err := s.profileRepo.GetByOwnerID(ctx, ownerID)
	s.ErrorIs(err, profileDomain.ErrNotFound)
}
