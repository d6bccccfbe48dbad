package storefront

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	catalogapp "communite/internal/application/catalog"
	"communite/internal/application/checkout"
	"communite/internal/domain/cart"
	domaincatalog "communite/internal/domain/catalog"
	"communite/internal/domain/customer"
	"communite/internal/domain/order"
	"communite/pkg/logger"
)

// Service is the single owner of the shopper's cart and checkout session.
// Every mutation funnels through one mutex, which is the serialization any
// presentation layer on top of it must rely on — handlers never touch the
// cart or session directly.
type Service struct {
	mu      sync.Mutex
	cart    *cart.Cart
	session *checkout.Session

	catalog        *catalogapp.Service
	directory      checkout.CustomerDirectory
	submitter      checkout.OrderSubmitter
	deliveryCharge decimal.Decimal
	log            logger.Logger
}

func NewService(
	catalog *catalogapp.Service,
	directory checkout.CustomerDirectory,
	submitter checkout.OrderSubmitter,
	deliveryCharge decimal.Decimal,
	log logger.Logger,
) *Service {
	return &Service{
		cart:           cart.New(),
		catalog:        catalog,
		directory:      directory,
		submitter:      submitter,
		deliveryCharge: deliveryCharge,
		log:            log,
	}
}

// CartView is the cart as the presentation layer sees it. The delivery
// charge only applies once the cart holds something.
type CartView struct {
	Items          []cart.LineItem `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

func (s *Service) Categories(ctx context.Context) ([]domaincatalog.Category, error) {
	return s.catalog.ListCategories(ctx)
}

func (s *Service) Subcategories(ctx context.Context, category string) ([]domaincatalog.Subcategory, error) {
	return s.catalog.ListSubcategories(ctx, category)
}

func (s *Service) Products(ctx context.Context, category, subcategory string) ([]domaincatalog.Product, error) {
	return s.catalog.ListProducts(ctx, category, subcategory)
}

func (s *Service) AddToCart(productName, variant string, unitPrice decimal.Decimal, quantity int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.Add(productName, variant, unitPrice, quantity); err != nil {
		return CartView{}, err
	}
	return s.viewLocked(), nil
}

// UpdateItem sets the quantity of the line item with the given stable ID;
// zero or less removes it.
func (s *Service) UpdateItem(id string, quantity int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.SetQuantityByID(id, quantity); err != nil {
		return CartView{}, err
	}
	return s.viewLocked(), nil
}

func (s *Service) RemoveItem(id string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.RemoveByID(id); err != nil {
		return CartView{}, err
	}
	return s.viewLocked(), nil
}

func (s *Service) ClearCart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	return s.viewLocked()
}

func (s *Service) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// StartCheckout opens a checkout session over the current cart. A session
// that already completed is replaced by a fresh one, so the shopper can
// order again.
func (s *Service) StartCheckout() (string, checkout.State, error) {
	s.mu.Lock()
	if s.session == nil || s.session.State() == checkout.StateCompleted {
		s.session = checkout.NewSession(s.cart, s.directory, s.submitter, s.log)
	}
	sess := s.session
	s.mu.Unlock()

	if err := sess.Start(); err != nil {
		return "", sess.State(), err
	}
	return sess.ID(), sess.State(), nil
}

// LookupCustomer drives the returning-customer path of the current session.
func (s *Service) LookupCustomer(ctx context.Context, mobile string) (customer.Customer, bool, error) {
	return s.currentSession().Lookup(ctx, mobile)
}

// SubmitOrder validates and submits the order with the configured delivery
// charge. On acceptance the cart is cleared by the session.
func (s *Service) SubmitOrder(ctx context.Context, fields customer.Customer) (*order.Confirmation, error) {
	return s.currentSession().Submit(ctx, fields, s.deliveryCharge)
}

func (s *Service) SessionState() checkout.State {
	return s.currentSession().State()
}

// currentSession returns the live session, creating an idle one on first
// use. A completed session stays visible until StartCheckout replaces it.
func (s *Service) currentSession() *checkout.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		s.session = checkout.NewSession(s.cart, s.directory, s.submitter, s.log)
	}
	return s.session
}

func (s *Service) viewLocked() CartView {
	sub := s.cart.Subtotal()
	charge := decimal.Zero
	if sub.IsPositive() {
		charge = s.deliveryCharge
	}
	return CartView{
		Items:          s.cart.Items(),
		Subtotal:       sub,
		DeliveryCharge: charge,
		GrandTotal:     s.cart.Total(s.deliveryCharge),
	}
}
