package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/finman/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDebtRepository creates a GormDebtRepository with a mocked SQL connection
func newMockDebtRepository(t *testing.T) (*GormDebtRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormDebtRepository(gormDB), mock, mockDB
}

func debtRows(debtID, clientID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "client_id", "version", "identification", "account_id",
		"description", "total_amount", "paid_amount", "discount_amount",
		"remaining_amount", "status",
	}).AddRow(
		debtID, clientID, 1, int64(42), uuid.New(),
		"Internet bill", decimal.NewFromInt(100), decimal.NewFromInt(40), decimal.Zero,
		decimal.NewFromInt(60), "PARTIALLY_PAID",
	)
}

func TestGormDebtRepository_FindByID(t *testing.T) {
	t.Run("finds existing debt", func(t *testing.T) {
		repo, mock, mockDB := newMockDebtRepository(t)
		defer mockDB.Close()

		debtID := uuid.New()
		clientID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "finance_manager"\."debts" WHERE client_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(clientID, debtID, 1).
			WillReturnRows(debtRows(debtID, clientID))

		debt, err := repo.FindByID(context.Background(), clientID, debtID)

		assert.NoError(t, err)
		require.NotNil(t, debt)
		assert.Equal(t, debtID, debt.ID)
		assert.Equal(t, clientID, debt.ClientID)
		assert.Equal(t, int64(42), debt.Identification)
		assert.True(t, debt.RemainingAmount.Equal(decimal.NewFromInt(60)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil without error when debt does not exist", func(t *testing.T) {
		repo, mock, mockDB := newMockDebtRepository(t)
		defer mockDB.Close()

		debtID := uuid.New()
		clientID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "finance_manager"\."debts" WHERE client_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(clientID, debtID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		debt, err := repo.FindByID(context.Background(), clientID, debtID)

		assert.NoError(t, err)
		assert.Nil(t, debt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDebtRepository_FindByIdentification(t *testing.T) {
	t.Run("finds debt by serial identification", func(t *testing.T) {
		repo, mock, mockDB := newMockDebtRepository(t)
		defer mockDB.Close()

		debtID := uuid.New()
		clientID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "finance_manager"\."debts" WHERE client_id = \$1 AND identification = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(clientID, int64(42), 1).
			WillReturnRows(debtRows(debtID, clientID))

		debt, err := repo.FindByIdentification(context.Background(), clientID, 42)

		assert.NoError(t, err)
		require.NotNil(t, debt)
		assert.Equal(t, int64(42), debt.Identification)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil when identification is unknown", func(t *testing.T) {
		repo, mock, mockDB := newMockDebtRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "finance_manager"\."debts" WHERE client_id = \$1 AND identification = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(clientID, int64(999), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		debt, err := repo.FindByIdentification(context.Background(), clientID, 999)

		assert.NoError(t, err)
		assert.Nil(t, debt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDebtRepository_FindAllForClient(t *testing.T) {
	t.Run("filters out settled debts when open filter is set", func(t *testing.T) {
		repo, mock, mockDB := newMockDebtRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "finance_manager"\."debts" WHERE client_id = \$1 AND status <> \$2 ORDER BY due_date ASC LIMIT .*`).
			WithArgs(clientID, "SETTLED", 50).
			WillReturnRows(debtRows(uuid.New(), clientID))

		filter := shared.DefaultFilter()
		filter.OrderBy = "due_date"
		filter.OrderDir = "asc"
		filter.Filters["open"] = true

		debts, err := repo.FindAllForClient(context.Background(), clientID, filter)

		assert.NoError(t, err)
		assert.Len(t, debts, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to created_at for unknown sort fields", func(t *testing.T) {
		repo, mock, mockDB := newMockDebtRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "finance_manager"\."debts" WHERE client_id = \$1 ORDER BY created_at DESC LIMIT .*`).
			WithArgs(clientID, 50).
			WillReturnRows(sqlmock.NewRows([]string{"id", "client_id"}))

		filter := shared.DefaultFilter()
		filter.OrderBy = "password; DROP TABLE users"

		debts, err := repo.FindAllForClient(context.Background(), clientID, filter)

		assert.NoError(t, err)
		assert.Empty(t, debts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDebtRepository_SaveWithLock(t *testing.T) {
	t.Run("increments version on successful update", func(t *testing.T) {
		repo, mock, mockDB := newMockDebtRepository(t)
		defer mockDB.Close()

		debtID := uuid.New()
		clientID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "finance_manager"\."debts" WHERE client_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(clientID, debtID, 1).
			WillReturnRows(debtRows(debtID, clientID))

		debt, err := repo.FindByID(context.Background(), clientID, debtID)
		require.NoError(t, err)
		require.NotNil(t, debt)
		require.Equal(t, 1, debt.Version)

		mock.ExpectExec(`UPDATE "finance_manager"\."debts" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveWithLock(context.Background(), debt)

		assert.NoError(t, err)
		assert.Equal(t, 2, debt.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports conflict when stored version moved on", func(t *testing.T) {
		repo, mock, mockDB := newMockDebtRepository(t)
		defer mockDB.Close()

		debtID := uuid.New()
		clientID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "finance_manager"\."debts" WHERE client_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(clientID, debtID, 1).
			WillReturnRows(debtRows(debtID, clientID))

		debt, err := repo.FindByID(context.Background(), clientID, debtID)
		require.NoError(t, err)
		require.NotNil(t, debt)

		mock.ExpectExec(`UPDATE "finance_manager"\."debts" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), debt)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.Equal(t, 1, debt.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
