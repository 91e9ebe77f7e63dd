package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/account"
	"orderflow/internal/core/domain/model/cart"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSession struct{ mock.Mock }

func (m *MockSession) CurrentAccount() (account.ID, bool) {
	args := m.Called()
	return args.Get(0).(account.ID), args.Bool(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Append(ctx context.Context, accountID account.ID, o *order.Order) error {
	args := m.Called(ctx, accountID, o)
	return args.Error(0)
}

func (m *MockHistoryRepository) UpdateStatus(
	ctx context.Context, accountID account.ID, orderID kernel.UUID, target order.Status,
) (bool, error) {
	args := m.Called(ctx, accountID, orderID, target)
	return args.Bool(0), args.Error(1)
}

func (m *MockHistoryRepository) History(_ context.Context, _ account.ID) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockHistoryRepository) Latest(_ context.Context, _ account.ID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockTransitionScheduler struct{ mock.Mock }

func (m *MockTransitionScheduler) Schedule(accountID account.ID, orderID kernel.UUID, plan services.Plan) {
	m.Called(accountID, orderID, plan)
}

func newSubmitHandler(
	session *MockSession,
	history *MockHistoryRepository,
	scheduler *MockTransitionScheduler,
) *commands.SubmitOrderCommandHandler {
	planner, err := services.NewProgressionPlanner(services.DefaultProgressionTiming())
	if err != nil {
		panic(err)
	}

	return commands.NewSubmitOrderCommandHandler(
		session,
		history,
		services.DefaultPartnerRoster(),
		planner,
		scheduler,
		metrics.NewDeliveryMetrics(prometheus.NewRegistry()),
		slog.New(slog.DiscardHandler),
		rand.New(rand.NewSource(42)),
	)
}

func TestSubmitOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSubmitOrderCommand(
		[]cart.Line{mustLine(t, "p1", "Wireless Mouse", 29.99)}, "ring the bell")
	require.NoError(t, err)

	session := new(MockSession)
	session.On("CurrentAccount").Return(account.ID("user1"), true).Once()

	history := new(MockHistoryRepository)
	history.On("Append", mock.Anything, account.ID("user1"), mock.AnythingOfType("*order.Order")).
		Return(nil).Once()

	scheduler := new(MockTransitionScheduler)
	scheduler.On("Schedule", account.ID("user1"), mock.AnythingOfType("kernel.UUID"),
		mock.AnythingOfType("services.Plan")).Once()

	h := newSubmitHandler(session, history, scheduler)
	submitted, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, submitted)
	assert.Equal(t, order.Pending, submitted.Status())
	assert.Equal(t, 29.99, submitted.Total())
	assert.Equal(t, "ring the bell", submitted.Notes())
	assert.True(t, services.DefaultPartnerRoster().Contains(submitted.Partner()))
	session.AssertExpectations(t)
	history.AssertExpectations(t)
	scheduler.AssertExpectations(t)
}

func TestSubmitOrderCommandHandler_Handle_AnonymousSession(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSubmitOrderCommand(
		[]cart.Line{mustLine(t, "p1", "Wireless Mouse", 29.99)}, "")
	require.NoError(t, err)

	session := new(MockSession)
	session.On("CurrentAccount").Return(account.ID(""), false).Once()

	history := new(MockHistoryRepository)
	scheduler := new(MockTransitionScheduler)

	h := newSubmitHandler(session, history, scheduler)
	submitted, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, submitted)
	history.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	scheduler.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitOrderCommandHandler_Handle_EmptyCart(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSubmitOrderCommand(nil, "")
	require.NoError(t, err)

	session := new(MockSession)
	session.On("CurrentAccount").Return(account.ID("user1"), true).Once()

	history := new(MockHistoryRepository)
	scheduler := new(MockTransitionScheduler)

	h := newSubmitHandler(session, history, scheduler)
	submitted, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, submitted)
	history.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	scheduler.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.SubmitOrderCommand{} // not constructed properly

	h := newSubmitHandler(new(MockSession), new(MockHistoryRepository), new(MockTransitionScheduler))
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrSubmitOrderCommandIsNotConstructed)
}

func TestSubmitOrderCommandHandler_Handle_AppendError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSubmitOrderCommand(
		[]cart.Line{mustLine(t, "p1", "Wireless Mouse", 29.99)}, "")
	require.NoError(t, err)

	session := new(MockSession)
	session.On("CurrentAccount").Return(account.ID("user1"), true).Once()

	history := new(MockHistoryRepository)
	history.On("Append", mock.Anything, account.ID("user1"), mock.AnythingOfType("*order.Order")).
		Return(errors.New("append error")).Once()

	scheduler := new(MockTransitionScheduler)

	h := newSubmitHandler(session, history, scheduler)
	submitted, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, submitted)
	scheduler.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything, mock.Anything)
}
