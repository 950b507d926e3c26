//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/formdesk/formdesk-server/internal/model"
	repo "github.com/formdesk/formdesk-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "formdesk_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/formdesk_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	submissions := repo.NewSubmissionRepository(conn)
	users := repo.NewUserRepository(conn)
	profiles := repo.NewProfileRepository(conn)

	t.Run("submission insert and list", func(t *testing.T) {
		path := "avatars/test.png"
		saved, err := submissions.Create(ctx, model.Submission{
			ID:         uuid.New(),
			Name:       "Jane",
			Email:      "jane@example.com",
			AvatarPath: &path,
			AvatarURL:  "http://localhost:9000/avatars/test.png",
		})
		require.NoError(t, err)
		assert.False(t, saved.CreatedAt.IsZero())

		got, err := submissions.GetByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jane", got.Name)
		require.NotNil(t, got.AvatarPath)
		assert.Equal(t, path, *got.AvatarPath)

		latest, err := submissions.Latest(ctx, 50)
		require.NoError(t, err)
		require.NotEmpty(t, latest)
		assert.Equal(t, saved.ID, latest[0].ID)
	})

	t.Run("submission not found", func(t *testing.T) {
		_, err := submissions.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("user create and lookup", func(t *testing.T) {
		created, err := users.Create(ctx, model.User{
			ID:           uuid.New(),
			Email:        "jane@example.com",
			PasswordHash: []byte("hash"),
		})
		require.NoError(t, err)

		byEmail, err := users.GetByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byEmail.ID)

		_, err = users.GetByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("profile upsert is idempotent", func(t *testing.T) {
		id := uuid.New()

		first, err := profiles.Upsert(ctx, model.Profile{ID: id, FullName: "Jane"})
		require.NoError(t, err)

		second, err := profiles.Upsert(ctx, model.Profile{ID: id, FullName: "Jane Doe"})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "Jane Doe", second.FullName)

		var count int
		err = conn.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE id = $1`, id).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
