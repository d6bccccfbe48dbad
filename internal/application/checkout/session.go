package checkout

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"communite/internal/domain/cart"
	"communite/internal/domain/customer"
	"communite/internal/domain/order"
	"communite/pkg/logger"
)

// State labels for the checkout flow. A session moves
// idle → lookup_pending → customer_known|customer_unknown → form_editing →
// submitting → completed|failed; a failed submission may be retried.
type State string

const (
	StateIdle            State = "idle"
	StateLookupPending   State = "lookup_pending"
	StateCustomerKnown   State = "customer_known"
	StateCustomerUnknown State = "customer_unknown"
	StateFormEditing     State = "form_editing"
	StateSubmitting      State = "submitting"
	StateCompleted       State = "completed"
	StateFailed          State = "failed"
)

// CustomerDirectory resolves a mobile number to a previously known customer
// record. A miss returns (nil, nil).
type CustomerDirectory interface {
	FindCustomer(ctx context.Context, mobile customer.MobileNumber) (*customer.Customer, error)
}

// OrderSubmitter posts an assembled order to the backend.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, o *order.Order) (*order.Confirmation, error)
}

// Session drives one checkout: customer identification (lookup-or-create)
// followed by order assembly and submission against the owned cart. At most
// one submission is in flight at a time; a second Submit while one is
// outstanding is rejected with ErrSubmitInFlight.
type Session struct {
	mu        sync.Mutex
	id        string
	state     State
	prefilled customer.Customer

	cart      *cart.Cart
	directory CustomerDirectory
	submitter OrderSubmitter
	log       logger.Logger
}

func NewSession(c *cart.Cart, directory CustomerDirectory, submitter OrderSubmitter, log logger.Logger) *Session {
	return &Session{
		id:        uuid.NewString(),
		state:     StateIdle,
		cart:      c,
		directory: directory,
		submitter: submitter,
		log:       log,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Prefilled returns the customer fields gathered so far (from a lookup hit,
// or just the mobile number after a miss).
func (s *Session) Prefilled() customer.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefilled
}

// Start opens the checkout form. It fails when the cart is empty; checkout
// over nothing is meaningless.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateSubmitting:
		return ErrSubmitInFlight
	case StateCompleted:
		return ErrSessionCompleted
	}
	if s.cart.IsEmpty() {
		return order.ErrEmptyCart
	}
	s.state = StateFormEditing
	return nil
}

// Lookup resolves the returning-customer path. The mobile number is
// validated before any network call. A found record lands the session in
// customer_known with the record prefilled; a miss, or any directory error,
// lands in customer_unknown with only the mobile prefilled — the error is
// logged and swallowed so the flow degrades to manual entry.
func (s *Session) Lookup(ctx context.Context, rawMobile string) (customer.Customer, bool, error) {
	mobile, err := customer.NewMobileNumber(rawMobile)
	if err != nil {
		return customer.Customer{}, false, err
	}

	s.mu.Lock()
	switch s.state {
	case StateSubmitting:
		s.mu.Unlock()
		return customer.Customer{}, false, ErrSubmitInFlight
	case StateCompleted:
		s.mu.Unlock()
		return customer.Customer{}, false, ErrSessionCompleted
	}
	s.state = StateLookupPending
	s.mu.Unlock()

	record, lookupErr := s.directory.FindCustomer(ctx, mobile)

	s.mu.Lock()
	defer s.mu.Unlock()

	if lookupErr != nil {
		s.log.Warn("customer lookup failed, treating as new customer",
			logger.String("session_id", s.id),
			logger.Error(lookupErr),
		)
	}
	if lookupErr != nil || record == nil {
		s.prefilled = customer.Customer{MobileNumber: mobile.String()}
		s.state = StateCustomerUnknown
		return s.prefilled, false, nil
	}

	s.prefilled = *record
	s.state = StateCustomerKnown
	return s.prefilled, true, nil
}

// Submit validates the customer fields, assembles the order from the
// current cart and posts it. On acceptance the cart is cleared and the
// session completes; on rejection or transport failure the session moves to
// failed and Submit may be invoked again.
func (s *Session) Submit(ctx context.Context, fields customer.Customer, deliveryCharge decimal.Decimal) (*order.Confirmation, error) {
	s.mu.Lock()
	switch s.state {
	case StateSubmitting:
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	case StateCompleted:
		s.mu.Unlock()
		return nil, ErrSessionCompleted
	}

	if err := fields.Validate(); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	o, err := order.New(fields, s.cart, deliveryCharge)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	s.prefilled = fields
	s.state = StateSubmitting
	s.mu.Unlock()

	conf, submitErr := s.submitter.SubmitOrder(ctx, o)

	s.mu.Lock()
	defer s.mu.Unlock()

	if submitErr != nil {
		s.state = StateFailed
		s.log.Warn("order submission failed",
			logger.String("session_id", s.id),
			logger.Error(submitErr),
		)
		return nil, submitErr
	}

	s.cart.Clear()
	s.state = StateCompleted
	s.log.Info("order completed",
		logger.String("session_id", s.id),
		logger.String("order_id", conf.OrderID),
	)
	return conf, nil
}
