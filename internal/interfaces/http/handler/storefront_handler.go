package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"communite/internal/application/checkout"
	app "communite/internal/application/storefront"
	"communite/internal/domain/cart"
	"communite/internal/domain/customer"
	"communite/internal/domain/order"
	"communite/internal/infrastructure/http/backend"
)

type StorefrontHandler struct {
	svc *app.Service
}

func NewStorefrontHandler(svc *app.Service) *StorefrontHandler {
	return &StorefrontHandler{svc: svc}
}

func (h *StorefrontHandler) ListCategories(c *gin.Context) {
	cats, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (h *StorefrontHandler) ListSubcategories(c *gin.Context) {
	subs, err := h.svc.Subcategories(c.Request.Context(), c.Param("category"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subcategories": subs})
}

func (h *StorefrontHandler) ListProducts(c *gin.Context) {
	products, err := h.svc.Products(c.Request.Context(), c.Param("category"), c.Param("subcategory"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

type addItemRequest struct {
	ProductName string          `json:"product_name"`
	Variant     string          `json:"variant"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

func (h *StorefrontHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.svc.AddToCart(req.ProductName, req.Variant, req.UnitPrice, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *StorefrontHandler) UpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.svc.UpdateItem(c.Param("id"), req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *StorefrontHandler) RemoveItem(c *gin.Context) {
	view, err := h.svc.RemoveItem(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *StorefrontHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Cart())
}

func (h *StorefrontHandler) ClearCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ClearCart())
}

func (h *StorefrontHandler) StartCheckout(c *gin.Context) {
	id, state, err := h.svc.StartCheckout()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": id, "state": state})
}

type lookupRequest struct {
	MobileNumber string `json:"mobile_number"`
}

func (h *StorefrontHandler) LookupCustomer(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefilled, found, err := h.svc.LookupCustomer(c.Request.Context(), req.MobileNumber)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": found, "customer": prefilled})
}

func (h *StorefrontHandler) SubmitOrder(c *gin.Context) {
	var fields customer.Customer
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conf, err := h.svc.SubmitOrder(c.Request.Context(), fields)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"order_id":      conf.OrderID,
		"order_cycle":   conf.OrderCycle,
		"delivery_date": conf.DeliveryDate,
		"total_amount":  conf.TotalAmount,
		"message":       conf.Message,
	})
}

// writeError maps domain errors onto HTTP statuses. Validation problems are
// the caller's fault, in-flight and completed-session conflicts are 409,
// and anything from the backend (rejection or transport) is a 502 so the
// client can tell "fix your input" from "try again later".
func writeError(c *gin.Context, err error) {
	var verr *customer.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "missing_fields": verr.Missing})
		return
	}

	var rej *backend.RejectionError
	if errors.As(err, &rej) {
		c.JSON(http.StatusBadGateway, gin.H{"error": rej.Message})
		return
	}

	switch {
	case errors.Is(err, cart.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrSubmitInFlight),
		errors.Is(err, checkout.ErrSessionCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, customer.ErrInvalidMobile),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrNegativePrice),
		errors.Is(err, cart.ErrMissingProduct),
		errors.Is(err, cart.ErrIndexOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
