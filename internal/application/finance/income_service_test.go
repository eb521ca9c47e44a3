package finance

import (
	"context"
	"testing"
	"time"

	"github.com/finman/backend/internal/domain/finance"
	"github.com/finman/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockIncomeRepository struct {
	mock.Mock
}

func (m *MockIncomeRepository) FindAllForClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]finance.Income, error) {
	args := m.Called(ctx, clientID, filter)
	return args.Get(0).([]finance.Income), args.Error(1)
}

func (m *MockIncomeRepository) Save(ctx context.Context, income *finance.Income) error {
	args := m.Called(ctx, income)
	return args.Error(0)
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func newIncomeService(incomes *MockIncomeRepository, instruments *MockInstrumentRepository, categories *MockCategoryRepository) *IncomeService {
	return NewIncomeService(incomes, instruments, categories, zap.NewNop())
}

func TestCreateIncomeByCode(t *testing.T) {
	incomes := new(MockIncomeRepository)
	instruments := new(MockInstrumentRepository)
	categories := new(MockCategoryRepository)
	service := newIncomeService(incomes, instruments, categories)

	clientID := uuid.New()
	account, err := finance.NewBankAccount(clientID, "Nubank", "nu01")
	require.NoError(t, err)

	instruments.On("FindByCode", mock.Anything, clientID, "nu01").Return(account, nil)
	incomes.On("Save", mock.Anything, mock.AnythingOfType("*finance.Income")).Return(nil)

	income, err := service.CreateIncome(context.Background(), CreateIncomeRequest{
		ClientID:       clientID,
		InstrumentCode: "nu01",
		Description:    "salary",
		Amount:         mustDecimal(t, "5000.00"),
		ReceiptDate:    time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, account.ID, income.AccountID)
	assert.Nil(t, income.CategoryID)
	incomes.AssertExpectations(t)
}

func TestCreateIncomeResolvesCategory(t *testing.T) {
	incomes := new(MockIncomeRepository)
	instruments := new(MockInstrumentRepository)
	categories := new(MockCategoryRepository)
	service := newIncomeService(incomes, instruments, categories)

	clientID := uuid.New()
	account, err := finance.NewBankAccount(clientID, "Nubank", "nu01")
	require.NoError(t, err)
	category, err := finance.NewCategory(clientID, "Salario")
	require.NoError(t, err)

	instruments.On("FindByCode", mock.Anything, clientID, "nu01").Return(account, nil)
	categories.On("FindByName", mock.Anything, clientID, "Salario").Return(category, nil)
	incomes.On("Save", mock.Anything, mock.AnythingOfType("*finance.Income")).Return(nil)

	income, err := service.CreateIncome(context.Background(), CreateIncomeRequest{
		ClientID:       clientID,
		InstrumentCode: "nu01",
		CategoryName:   "Salario",
		Description:    "salary",
		Amount:         mustDecimal(t, "5000.00"),
		ReceiptDate:    time.Now(),
	})

	require.NoError(t, err)
	require.NotNil(t, income.CategoryID)
	assert.Equal(t, category.ID, *income.CategoryID)
	categories.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateIncomeAutoCreatesCategory(t *testing.T) {
	incomes := new(MockIncomeRepository)
	instruments := new(MockInstrumentRepository)
	categories := new(MockCategoryRepository)
	service := newIncomeService(incomes, instruments, categories)

	clientID := uuid.New()
	account, err := finance.NewBankAccount(clientID, "Nubank", "nu01")
	require.NoError(t, err)

	instruments.On("FindByCode", mock.Anything, clientID, "nu01").Return(account, nil)
	categories.On("FindByName", mock.Anything, clientID, "Freela").Return(nil, nil)
	categories.On("Save", mock.Anything, mock.AnythingOfType("*finance.Category")).Return(nil)
	incomes.On("Save", mock.Anything, mock.AnythingOfType("*finance.Income")).Return(nil)

	income, err := service.CreateIncome(context.Background(), CreateIncomeRequest{
		ClientID:       clientID,
		InstrumentCode: "nu01",
		CategoryName:   "Freela",
		Description:    "side gig",
		Amount:         mustDecimal(t, "800.00"),
		ReceiptDate:    time.Now(),
	})

	require.NoError(t, err)
	assert.NotNil(t, income.CategoryID)
	categories.AssertExpectations(t)
}

func TestCreateIncomeInstrumentNotFound(t *testing.T) {
	incomes := new(MockIncomeRepository)
	instruments := new(MockInstrumentRepository)
	categories := new(MockCategoryRepository)
	service := newIncomeService(incomes, instruments, categories)

	clientID := uuid.New()
	instruments.On("FindByCode", mock.Anything, clientID, "xx99").Return(nil, nil)

	_, err := service.CreateIncome(context.Background(), CreateIncomeRequest{
		ClientID:       clientID,
		InstrumentCode: "xx99",
		Description:    "salary",
		Amount:         mustDecimal(t, "5000.00"),
		ReceiptDate:    time.Now(),
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	incomes.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateIncomeMissingInstrumentReference(t *testing.T) {
	service := newIncomeService(new(MockIncomeRepository), new(MockInstrumentRepository), new(MockCategoryRepository))

	_, err := service.CreateIncome(context.Background(), CreateIncomeRequest{
		ClientID:    uuid.New(),
		Description: "salary",
		Amount:      mustDecimal(t, "5000.00"),
		ReceiptDate: time.Now(),
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}
