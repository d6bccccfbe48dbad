package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"communite/internal/domain/cart"
	"communite/internal/domain/customer"
	"communite/internal/domain/order"
	"communite/pkg/logger"
)

// MockDirectory is a mock for the CustomerDirectory interface
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) FindCustomer(ctx context.Context, mobile customer.MobileNumber) (*customer.Customer, error) {
	args := m.Called(ctx, mobile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

// MockSubmitter is a mock for the OrderSubmitter interface
type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) SubmitOrder(ctx context.Context, o *order.Order) (*order.Confirmation, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Confirmation), args.Error(1)
}

func filledCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New()
	require.NoError(t, c.Add("Tomato", "1kg", decimal.NewFromInt(40), 3))
	return c
}

func validFields() customer.Customer {
	return customer.Customer{
		FullName:     "Asha Rao",
		MobileNumber: "9876543210",
		Email:        "asha@example.com",
		AptNumber:    "B-204",
		Community:    "Green Meadows",
	}
}

func newSession(t *testing.T, c *cart.Cart) (*Session, *MockDirectory, *MockSubmitter) {
	t.Helper()
	dir := new(MockDirectory)
	sub := new(MockSubmitter)
	return NewSession(c, dir, sub, logger.NewNop()), dir, sub
}

func TestSession_Start(t *testing.T) {
	s, _, _ := newSession(t, filledCart(t))

	require.Equal(t, StateIdle, s.State())
	require.NoError(t, s.Start())
	assert.Equal(t, StateFormEditing, s.State())
	assert.NotEmpty(t, s.ID())
}

func TestSession_Start_EmptyCart(t *testing.T) {
	s, _, _ := newSession(t, cart.New())

	assert.ErrorIs(t, s.Start(), order.ErrEmptyCart)
	assert.Equal(t, StateIdle, s.State())
}

func TestSession_Lookup_InvalidMobile_NoNetworkCall(t *testing.T) {
	s, dir, _ := newSession(t, filledCart(t))

	_, _, err := s.Lookup(context.Background(), "123456789")

	assert.ErrorIs(t, err, customer.ErrInvalidMobile)
	dir.AssertNotCalled(t, "FindCustomer", mock.Anything, mock.Anything)
}

func TestSession_Lookup_Found(t *testing.T) {
	s, dir, _ := newSession(t, filledCart(t))
	known := validFields()
	dir.On("FindCustomer", mock.Anything, mock.Anything).Return(&known, nil)

	prefilled, found, err := s.Lookup(context.Background(), "9876543210")

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, known, prefilled)
	assert.Equal(t, StateCustomerKnown, s.State())
	assert.Equal(t, known, s.Prefilled())
	dir.AssertExpectations(t)
}

func TestSession_Lookup_Miss(t *testing.T) {
	s, dir, _ := newSession(t, filledCart(t))
	dir.On("FindCustomer", mock.Anything, mock.Anything).Return(nil, nil)

	prefilled, found, err := s.Lookup(context.Background(), "9876543210")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "9876543210", prefilled.MobileNumber)
	assert.Empty(t, prefilled.FullName)
	assert.Equal(t, StateCustomerUnknown, s.State())
}

func TestSession_Lookup_DirectoryErrorSwallowed(t *testing.T) {
	s, dir, _ := newSession(t, filledCart(t))
	dir.On("FindCustomer", mock.Anything, mock.Anything).Return(nil, errors.New("backend down"))

	prefilled, found, err := s.Lookup(context.Background(), "9876543210")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "9876543210", prefilled.MobileNumber)
	assert.Equal(t, StateCustomerUnknown, s.State())
}

func TestSession_Submit_MissingEmail(t *testing.T) {
	c := filledCart(t)
	s, _, sub := newSession(t, c)
	require.NoError(t, s.Start())

	fields := validFields()
	fields.Email = ""

	_, err := s.Submit(context.Background(), fields, decimal.NewFromInt(50))

	var verr *customer.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"email"}, verr.Missing)
	assert.Equal(t, StateFormEditing, s.State())
	assert.Equal(t, 1, c.Len())
	sub.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)
}

func TestSession_Submit_Success_ClearsCart(t *testing.T) {
	c := filledCart(t)
	s, _, sub := newSession(t, c)
	require.NoError(t, s.Start())

	sub.On("SubmitOrder", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return len(o.Cart) == 1 && o.TotalAmount.Equal(decimal.NewFromInt(170))
	})).Return(&order.Confirmation{OrderID: "ORD-1042", DeliveryDate: "2026-09-02"}, nil)

	conf, err := s.Submit(context.Background(), validFields(), decimal.NewFromInt(50))

	require.NoError(t, err)
	assert.NotEmpty(t, conf.OrderID)
	assert.Equal(t, StateCompleted, s.State())
	assert.True(t, c.Subtotal().IsZero())
	sub.AssertExpectations(t)
}

func TestSession_Submit_RejectionKeepsCartAndRetries(t *testing.T) {
	c := filledCart(t)
	s, _, sub := newSession(t, c)
	require.NoError(t, s.Start())

	rejection := errors.New("ordering window is closed")
	sub.On("SubmitOrder", mock.Anything, mock.Anything).Return(nil, rejection).Once()
	sub.On("SubmitOrder", mock.Anything, mock.Anything).Return(&order.Confirmation{OrderID: "ORD-1043"}, nil).Once()

	_, err := s.Submit(context.Background(), validFields(), decimal.NewFromInt(50))
	assert.EqualError(t, err, "ordering window is closed")
	assert.Equal(t, StateFailed, s.State())
	assert.Equal(t, 1, c.Len())

	conf, err := s.Submit(context.Background(), validFields(), decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.Equal(t, "ORD-1043", conf.OrderID)
	assert.Equal(t, StateCompleted, s.State())
	sub.AssertExpectations(t)
}

func TestSession_Submit_AfterCompleted(t *testing.T) {
	s, _, sub := newSession(t, filledCart(t))
	require.NoError(t, s.Start())
	sub.On("SubmitOrder", mock.Anything, mock.Anything).Return(&order.Confirmation{OrderID: "ORD-1"}, nil).Once()

	_, err := s.Submit(context.Background(), validFields(), decimal.NewFromInt(50))
	require.NoError(t, err)

	_, err = s.Submit(context.Background(), validFields(), decimal.NewFromInt(50))
	assert.ErrorIs(t, err, ErrSessionCompleted)
}

// blockingSubmitter holds the first submission open until released, so a
// second Submit can be attempted while one is in flight.
type blockingSubmitter struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSubmitter) SubmitOrder(ctx context.Context, o *order.Order) (*order.Confirmation, error) {
	close(b.entered)
	<-b.release
	return &order.Confirmation{OrderID: "ORD-1"}, nil
}

func TestSession_Submit_RejectsConcurrentSubmit(t *testing.T) {
	c := filledCart(t)
	blocking := &blockingSubmitter{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewSession(c, new(MockDirectory), blocking, logger.NewNop())
	require.NoError(t, s.Start())

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), validFields(), decimal.NewFromInt(50))
		done <- err
	}()

	select {
	case <-blocking.entered:
	case <-time.After(time.Second):
		t.Fatal("first submit never reached the submitter")
	}

	_, err := s.Submit(context.Background(), validFields(), decimal.NewFromInt(50))
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(blocking.release)
	require.NoError(t, <-done)
	assert.Equal(t, StateCompleted, s.State())
}
