package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	appfinance "github.com/finman/backend/internal/application/finance"
	"github.com/finman/backend/internal/domain/finance"
	"github.com/finman/backend/internal/domain/identity"
	"github.com/finman/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByChatID(ctx context.Context, chatID int64) (*identity.User, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockDebtRepository struct {
	mock.Mock
}

func (m *MockDebtRepository) FindByID(ctx context.Context, clientID, id uuid.UUID) (*finance.Debt, error) {
	args := m.Called(ctx, clientID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindByIdentification(ctx context.Context, clientID uuid.UUID, identification int64) (*finance.Debt, error) {
	args := m.Called(ctx, clientID, identification)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindAllForClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]finance.Debt, error) {
	args := m.Called(ctx, clientID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Debt), args.Error(1)
}

func (m *MockDebtRepository) Save(ctx context.Context, debt *finance.Debt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) SaveWithLock(ctx context.Context, debt *finance.Debt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

func activeUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("maria", "maria@example.com", "s3nh4forte")
	require.NoError(t, err)
	return user
}

func newDispatcher(users *MockUserRepository, debts *MockDebtRepository) *Dispatcher {
	var debtService *appfinance.DebtService
	if debts != nil {
		debtService = appfinance.NewDebtService(debts, nil, nil, nil, nil, nil, zap.NewNop())
	}
	return NewDispatcher(users, debtService, nil, nil, zap.NewNop())
}

func TestDispatcherUnknownCommand(t *testing.T) {
	d := newDispatcher(new(MockUserRepository), nil)

	reply := d.HandleMessage(context.Background(), 100, "bom dia")

	assert.Equal(t, replyUnknown, reply)
}

func TestDispatcherUnlinkedChat(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByChatID", mock.Anything, int64(100)).Return(nil, nil)

	d := newDispatcher(users, nil)
	reply := d.HandleMessage(context.Background(), 100, "/debitos")

	assert.Equal(t, replyNotLinked, reply)
}

func TestDispatcherInactiveUser(t *testing.T) {
	user := activeUser(t)
	require.NoError(t, user.Deactivate())

	users := new(MockUserRepository)
	users.On("FindByChatID", mock.Anything, int64(100)).Return(user, nil)

	d := newDispatcher(users, nil)
	reply := d.HandleMessage(context.Background(), 100, "/debitos")

	assert.Equal(t, replyNotLinked, reply)
}

func TestDispatcherLinkAccount(t *testing.T) {
	t.Run("binds chat on valid credentials", func(t *testing.T) {
		user := activeUser(t)
		users := new(MockUserRepository)
		users.On("FindByUsername", mock.Anything, "maria").Return(user, nil)
		users.On("Update", mock.Anything, mock.MatchedBy(func(u *identity.User) bool {
			return u.ChatID != nil && *u.ChatID == 555
		})).Return(nil)

		d := newDispatcher(users, nil)
		reply := d.HandleMessage(context.Background(), 555, "/vincular!maria!s3nh4forte")

		assert.Equal(t, replyLinked, reply)
		users.AssertExpectations(t)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		user := activeUser(t)
		users := new(MockUserRepository)
		users.On("FindByUsername", mock.Anything, "maria").Return(user, nil)

		d := newDispatcher(users, nil)
		reply := d.HandleMessage(context.Background(), 555, "/vincular!maria!errada")

		assert.Equal(t, "Usuário ou senha inválidos.", reply)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown user", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByUsername", mock.Anything, "ninguem").Return(nil, nil)

		d := newDispatcher(users, nil)
		reply := d.HandleMessage(context.Background(), 555, "/vincular!ninguem!senha123")

		assert.Equal(t, "Usuário ou senha inválidos.", reply)
	})
}

func TestDispatcherListDebts(t *testing.T) {
	user := activeUser(t)
	users := new(MockUserRepository)
	users.On("FindByChatID", mock.Anything, int64(200)).Return(user, nil)

	debt, err := finance.NewDebt(user.ID, uuid.New(), "Internet",
		decimal.NewFromInt(120), day(2026, 3, 15))
	require.NoError(t, err)
	debt.Identification = 3

	debts := new(MockDebtRepository)
	debts.On("FindAllForClient", mock.Anything, user.ID, mock.MatchedBy(func(f shared.Filter) bool {
		open, _ := f.Filters["open"].(bool)
		return open
	})).Return([]finance.Debt{*debt}, nil)

	d := newDispatcher(users, debts)
	reply := d.HandleMessage(context.Background(), 200, "/debitos")

	assert.True(t, strings.Contains(reply, "#3 Internet"), "reply: %s", reply)
	assert.True(t, strings.Contains(reply, "120,00"), "reply: %s", reply)
}

func TestDispatcherListDebtsEmpty(t *testing.T) {
	user := activeUser(t)
	users := new(MockUserRepository)
	users.On("FindByChatID", mock.Anything, int64(200)).Return(user, nil)

	debts := new(MockDebtRepository)
	debts.On("FindAllForClient", mock.Anything, user.ID, mock.Anything).
		Return([]finance.Debt{}, nil)

	d := newDispatcher(users, debts)
	reply := d.HandleMessage(context.Background(), 200, "/debitos")

	assert.Equal(t, replyNoDebts, reply)
}

func TestDispatcherErrorBecomesReply(t *testing.T) {
	user := activeUser(t)
	users := new(MockUserRepository)
	users.On("FindByChatID", mock.Anything, int64(200)).Return(user, nil)

	debts := new(MockDebtRepository)
	debts.On("FindAllForClient", mock.Anything, user.ID, mock.Anything).
		Return(nil, errors.New("connection refused"))

	d := newDispatcher(users, debts)
	reply := d.HandleMessage(context.Background(), 200, "/debitos")

	assert.Equal(t, "Algo deu errado, tente novamente mais tarde.", reply)
}
