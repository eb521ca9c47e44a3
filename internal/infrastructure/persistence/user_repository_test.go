package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockUserRepository creates a GormUserRepository with a mocked SQL connection
func newMockUserRepository(t *testing.T) (*GormUserRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormUserRepository(gormDB), mock, mockDB
}

func TestGormUserRepository_FindByUsername(t *testing.T) {
	t.Run("matches case-insensitively", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "status", "version"}).
			AddRow(userID, "alice", "alice@example.com", "$2a$10$hash", "active", 1)

		mock.ExpectQuery(`SELECT \* FROM "auth"\."users" WHERE LOWER\(username\) = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("alice", 1).
			WillReturnRows(rows)

		user, err := repo.FindByUsername(context.Background(), "Alice")

		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil without error when username is unknown", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "auth"\."users" WHERE LOWER\(username\) = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ghost", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.FindByUsername(context.Background(), "ghost")

		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_FindByChatID(t *testing.T) {
	t.Run("finds user bound to chat", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		chatID := int64(123456789)

		rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "status", "chat_id", "version"}).
			AddRow(userID, "alice", "alice@example.com", "$2a$10$hash", "active", chatID, 1)

		mock.ExpectQuery(`SELECT \* FROM "auth"\."users" WHERE chat_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(chatID, 1).
			WillReturnRows(rows)

		user, err := repo.FindByChatID(context.Background(), chatID)

		assert.NoError(t, err)
		require.NotNil(t, user)
		require.NotNil(t, user.ChatID)
		assert.Equal(t, chatID, *user.ChatID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil for unbound chat", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "auth"\."users" WHERE chat_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(42), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.FindByChatID(context.Background(), 42)

		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_ExistsByUsername(t *testing.T) {
	t.Run("returns true when username is taken", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "auth"\."users" WHERE LOWER\(username\) = \$1`).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByUsername(context.Background(), "Alice")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when username is free", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "auth"\."users" WHERE LOWER\(username\) = \$1`).
			WithArgs("newuser").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByUsername(context.Background(), "newuser")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
