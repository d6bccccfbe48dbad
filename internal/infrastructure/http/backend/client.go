package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"communite/internal/config"
	"communite/internal/domain/catalog"
	"communite/internal/domain/customer"
	"communite/internal/domain/order"
	"communite/pkg/logger"
)

// Client talks to the remote catalog/order service. Every endpoint lives
// under {BaseURL}/api and speaks JSON; the assorted response shapes the
// backend variants produce are normalized here before anything reaches the
// cart or checkout core.
type Client struct {
	httpClient *http.Client
	cfg        config.BackendConfig
	log        logger.Logger
}

func NewClient(cfg config.BackendConfig, log logger.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

func (c *Client) Categories(ctx context.Context) ([]catalog.Category, error) {
	raw, err := c.getJSON(ctx, "categories")
	if err != nil {
		return nil, err
	}

	entries, err := normalizeNamedList(raw, "categories")
	if err != nil {
		return nil, fmt.Errorf("normalize categories: %w", err)
	}

	out := make([]catalog.Category, 0, len(entries))
	for _, e := range entries {
		out = append(out, catalog.Category{Name: e.Name, Image: e.Image})
	}
	return out, nil
}

func (c *Client) Subcategories(ctx context.Context, category string) ([]catalog.Subcategory, error) {
	raw, err := c.getJSON(ctx, "subcategories", category)
	if err != nil {
		return nil, err
	}

	entries, err := normalizeNamedList(raw, "subcategories")
	if err != nil {
		return nil, fmt.Errorf("normalize subcategories: %w", err)
	}

	out := make([]catalog.Subcategory, 0, len(entries))
	for _, e := range entries {
		out = append(out, catalog.Subcategory{Name: e.Name, Image: e.Image})
	}
	return out, nil
}

func (c *Client) Products(ctx context.Context, category, subcategory string) ([]catalog.Product, error) {
	raw, err := c.getJSON(ctx, "products", category, subcategory)
	if err != nil {
		return nil, err
	}

	wire, err := normalizeProductList(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize products: %w", err)
	}

	out := make([]catalog.Product, 0, len(wire))
	for _, p := range wire {
		price, err := decimal.NewFromString(p.Price.String())
		if err != nil {
			return nil, fmt.Errorf("product %q has invalid price %q", p.ProductName, p.Price.String())
		}
		out = append(out, catalog.Product{
			ProductName: p.ProductName,
			Variant:     p.Variant,
			Price:       price,
			Image:       p.Image,
			Description: p.Description,
		})
	}
	return out, nil
}

type customerResponse struct {
	Found    bool               `json:"found"`
	Customer *customer.Customer `json:"customer"`
}

// FindCustomer looks up a customer record by mobile number. A miss is not
// an error: it returns (nil, nil).
func (c *Client) FindCustomer(ctx context.Context, mobile customer.MobileNumber) (*customer.Customer, error) {
	raw, err := c.getJSON(ctx, "customer", mobile.String())
	if err != nil {
		return nil, err
	}

	var body customerResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decode customer response: %w", err)
	}

	if !body.Found || body.Customer == nil {
		return nil, nil
	}
	return body.Customer, nil
}

type lineItemPayload struct {
	ProductName string  `json:"product_name"`
	Variant     string  `json:"variant"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	TotalPrice  float64 `json:"total_price"`
}

type submitPayload struct {
	Customer             customer.Customer `json:"customer"`
	Cart                 []lineItemPayload `json:"cart"`
	Subtotal             float64           `json:"subtotal"`
	DeliveryCharge       float64           `json:"delivery_charge"`
	TotalAmount          float64           `json:"total_amount"`
	DeliveryInstructions string            `json:"delivery_instructions"`
}

type submitResponse struct {
	Success      bool    `json:"success"`
	OrderID      string  `json:"order_id"`
	OrderCycle   string  `json:"order_cycle"`
	DeliveryDate string  `json:"delivery_date"`
	TotalAmount  float64 `json:"total_amount"`
	Message      string  `json:"message"`
}

// SubmitOrder posts the assembled order. A success=false answer becomes a
// *RejectionError carrying the backend's message.
func (c *Client) SubmitOrder(ctx context.Context, o *order.Order) (*order.Confirmation, error) {
	if o == nil {
		return nil, fmt.Errorf("order is nil")
	}

	payload := submitPayload{
		Customer:             o.Customer,
		Cart:                 make([]lineItemPayload, 0, len(o.Cart)),
		Subtotal:             o.Subtotal.InexactFloat64(),
		DeliveryCharge:       o.DeliveryCharge.InexactFloat64(),
		TotalAmount:          o.TotalAmount.InexactFloat64(),
		DeliveryInstructions: o.DeliveryInstructions,
	}
	for _, item := range o.Cart {
		payload.Cart = append(payload.Cart, lineItemPayload{
			ProductName: item.ProductName,
			Variant:     item.Variant,
			UnitPrice:   item.UnitPrice.InexactFloat64(),
			Quantity:    item.Quantity,
			TotalPrice:  item.TotalPrice.InexactFloat64(),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, body, "submit-order")
	if err != nil {
		return nil, err
	}

	var resp submitResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode submit response: %w", err)
	}

	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "order was not accepted"
		}
		return nil, &RejectionError{Message: msg}
	}

	c.log.Info("order accepted",
		logger.String("order_id", resp.OrderID),
		logger.String("order_cycle", resp.OrderCycle),
	)

	return &order.Confirmation{
		OrderID:      resp.OrderID,
		OrderCycle:   resp.OrderCycle,
		DeliveryDate: resp.DeliveryDate,
		TotalAmount:  decimal.NewFromFloat(resp.TotalAmount),
		Message:      resp.Message,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, segments ...string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, nil, segments...)
}

func (c *Client) do(ctx context.Context, method string, body []byte, segments ...string) (json.RawMessage, error) {
	u, err := c.apiURL(segments...)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call backend: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(data))
		if msg == "" {
			msg = resp.Status
		}
		c.log.Warn("backend returned error status",
			logger.Int("status", resp.StatusCode),
			logger.String("path", req.URL.Path),
		)
		return nil, fmt.Errorf("backend status %d: %s", resp.StatusCode, msg)
	}

	return json.RawMessage(data), nil
}

func (c *Client) apiURL(segments ...string) (string, error) {
	u, err := url.JoinPath(c.cfg.BaseURL, append([]string{"api"}, segments...)...)
	if err != nil {
		return "", fmt.Errorf("invalid backend base url: %w", err)
	}
	return u, nil
}
