package finance

import (
	"context"
	"testing"

	"github.com/finman/backend/internal/domain/finance"
	"github.com/finman/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateInstrumentBankAccount(t *testing.T) {
	repo := new(MockInstrumentRepository)
	service := NewInstrumentService(repo, zap.NewNop())
	clientID := uuid.New()

	repo.On("FindByCode", mock.Anything, clientID, "nu01").Return(nil, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*finance.FinancialInstrument")).Return(nil)

	instrument, err := service.CreateInstrument(context.Background(), CreateInstrumentRequest{
		ClientID:           clientID,
		Name:               "Nubank",
		Type:               finance.InstrumentTypeBankAccount,
		IdentificationCode: "nu01",
	})

	require.NoError(t, err)
	assert.Equal(t, finance.InstrumentTypeBankAccount, instrument.Type)
	assert.Equal(t, "nu01", instrument.IdentificationCode)
	repo.AssertExpectations(t)
}

func TestCreateInstrumentCreditCardCarriesCycleDays(t *testing.T) {
	repo := new(MockInstrumentRepository)
	service := NewInstrumentService(repo, zap.NewNop())
	clientID := uuid.New()

	repo.On("FindByCode", mock.Anything, clientID, "cc01").Return(nil, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*finance.FinancialInstrument")).Return(nil)

	instrument, err := service.CreateInstrument(context.Background(), CreateInstrumentRequest{
		ClientID:            clientID,
		Name:                "Visa",
		Type:                finance.InstrumentTypeCreditCard,
		IdentificationCode:  "cc01",
		StatementClosingDay: 28,
		PaymentDueDay:       5,
	})

	require.NoError(t, err)
	assert.True(t, instrument.IsCreditCard())
	assert.Equal(t, 28, instrument.StatementClosingDay)
	assert.Equal(t, 5, instrument.PaymentDueDay)
}

func TestCreateInstrumentDuplicateCode(t *testing.T) {
	repo := new(MockInstrumentRepository)
	service := NewInstrumentService(repo, zap.NewNop())
	clientID := uuid.New()

	existing, err := finance.NewBankAccount(clientID, "Nubank", "nu01")
	require.NoError(t, err)
	repo.On("FindByCode", mock.Anything, clientID, "nu01").Return(existing, nil)

	_, err = service.CreateInstrument(context.Background(), CreateInstrumentRequest{
		ClientID:           clientID,
		Name:               "Other",
		Type:               finance.InstrumentTypeBankAccount,
		IdentificationCode: "nu01",
	})

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateInstrumentUnknownType(t *testing.T) {
	repo := new(MockInstrumentRepository)
	service := NewInstrumentService(repo, zap.NewNop())
	clientID := uuid.New()

	repo.On("FindByCode", mock.Anything, clientID, "xx01").Return(nil, nil)

	_, err := service.CreateInstrument(context.Background(), CreateInstrumentRequest{
		ClientID:           clientID,
		Name:               "Mystery",
		Type:               finance.InstrumentType("WALLET"),
		IdentificationCode: "xx01",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestGetInstrumentNotFound(t *testing.T) {
	repo := new(MockInstrumentRepository)
	service := NewInstrumentService(repo, zap.NewNop())
	clientID := uuid.New()
	id := uuid.New()

	repo.On("FindByID", mock.Anything, clientID, id).Return(nil, nil)

	_, err := service.GetInstrument(context.Background(), clientID, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListInstruments(t *testing.T) {
	repo := new(MockInstrumentRepository)
	service := NewInstrumentService(repo, zap.NewNop())
	clientID := uuid.New()

	account, err := finance.NewBankAccount(clientID, "Nubank", "nu01")
	require.NoError(t, err)
	repo.On("FindAllForClient", mock.Anything, clientID).Return([]finance.FinancialInstrument{*account}, nil)

	instruments, err := service.ListInstruments(context.Background(), clientID)
	require.NoError(t, err)
	assert.Len(t, instruments, 1)
	assert.Equal(t, "Nubank", instruments[0].Name)
}
