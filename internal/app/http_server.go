package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/discount"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/fulfillment"
)

// httpServer связывает HTTP-маршруты с оркестратором и хранилищем.
type httpServer struct {
	orchestrator fulfillment.Orchestrator
	repo         domain.OrderRepository
	logger       *log.Entry
	validate     *validator.Validate
}

// NewRouter собирает HTTP-маршруты сервиса.
func NewRouter(deps *Dependencies) http.Handler {
	s := &httpServer{
		orchestrator: deps.Orchestrator,
		repo:         deps.Repo,
		logger:       deps.Logger.WithField("layer", "http"),
		validate:     validator.New(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", s.createOrder)
		r.Get("/{orderID}", s.getOrder)
		r.Post("/{orderID}/cancel", s.cancelOrder)
		r.Post("/{orderID}/deliver", s.deliverOrder)
	})

	return r
}

type orderItemRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	ProductName string `json:"product_name" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
	UnitPrice   string `json:"unit_price" validate:"required"`
}

type createOrderRequest struct {
	CustomerID      string             `json:"customer_id" validate:"required"`
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email" validate:"required,email"`
	ShippingAddress string             `json:"shipping_address" validate:"required"`
	OrderType       string             `json:"order_type" validate:"required,oneof=standard express international"`
	Discount        string             `json:"discount" validate:"omitempty,oneof=none percentage bulk vip"`
	ShippingOption  string             `json:"shipping_option" validate:"omitempty,oneof=standard express international"`
	PaymentMethod   string             `json:"payment_method" validate:"required,oneof=credit_card paypal bank_transfer crypto"`
	Items           []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

type orderItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
}

type capabilitiesResponse struct {
	Cancellable bool `json:"cancellable"`
	Modifiable  bool `json:"modifiable"`
	Refundable  bool `json:"refundable"`
	Trackable   bool `json:"trackable"`
}

type orderResponse struct {
	ID              string               `json:"id"`
	CustomerID      string               `json:"customer_id"`
	CustomerName    string               `json:"customer_name,omitempty"`
	CustomerEmail   string               `json:"customer_email"`
	ShippingAddress string               `json:"shipping_address"`
	OrderType       string               `json:"order_type"`
	Status          string               `json:"status"`
	Items           []orderItemResponse  `json:"items"`
	Subtotal        string               `json:"subtotal"`
	DiscountAmount  string               `json:"discount_amount"`
	TaxAmount       string               `json:"tax_amount"`
	ShippingCost    string               `json:"shipping_cost"`
	Total           string               `json:"total"`
	Carrier         string               `json:"carrier,omitempty"`
	TrackingNumber  string               `json:"tracking_number,omitempty"`
	PaymentMethod   string               `json:"payment_method,omitempty"`
	TransactionID   string               `json:"transaction_id,omitempty"`
	OrderDate       time.Time            `json:"order_date"`
	ShippedDate     *time.Time           `json:"shipped_date,omitempty"`
	Capabilities    capabilitiesResponse `json:"capabilities"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *httpServer) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	orderType, err := domain.ParseOrderType(req.OrderType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown order type")
		return
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		price, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid unit price for "+item.ProductName)
			return
		}
		items = append(items, domain.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   price,
		})
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:              uuid.NewString(),
		CustomerID:      req.CustomerID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		ShippingAddress: req.ShippingAddress,
		Items:           items,
		Type:            orderType,
		Status:          domain.OrderStatusCreated,
		OrderDate:       now,
		UpdatedAt:       now,
	}

	discountName := req.Discount
	if discountName == "" {
		discountName = discount.StrategyNone
	}

	if ok := s.orchestrator.Process(order, discountName, req.ShippingOption, req.PaymentMethod); !ok {
		s.logger.WithField("order_id", order.ID).Warn("order was not fulfilled")
		writeError(w, http.StatusUnprocessableEntity, "order could not be fulfilled")
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(*order))
}

func (s *httpServer) getOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := s.loadOrder(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (s *httpServer) cancelOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := s.loadOrder(w, r)
	if !ok {
		return
	}

	var req cancelOrderRequest
	if r.Body != nil {
		// Тело опционально, причина может отсутствовать.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := s.orchestrator.Cancel(&order, req.Reason); err != nil {
		if errors.Is(err, domain.ErrOrderNotCancellable) {
			writeError(w, http.StatusConflict, "order can no longer be cancelled")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to cancel order")
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (s *httpServer) deliverOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := s.loadOrder(w, r)
	if !ok {
		return
	}

	if err := s.orchestrator.Deliver(&order); err != nil {
		if errors.Is(err, domain.ErrInvalidStatusTransition) {
			writeError(w, http.StatusConflict, "order is not shipped")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to mark order delivered")
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (s *httpServer) loadOrder(w http.ResponseWriter, r *http.Request) (domain.Order, bool) {
	orderID := chi.URLParam(r, "orderID")
	order, err := s.repo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return domain.Order{}, false
		}
		s.logger.WithError(err).WithField("order_id", orderID).Error("failed to load order")
		writeError(w, http.StatusInternalServerError, "failed to load order")
		return domain.Order{}, false
	}
	return order, true
}

// toOrderResponse переводит доменный заказ в API-представление. Денежные
// суммы округляются до двух знаков только здесь, на границе.
func toOrderResponse(order domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Total:       item.Total().StringFixed(2),
		})
	}

	caps := order.Capabilities()
	resp := orderResponse{
		ID:              order.ID,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		ShippingAddress: order.ShippingAddress,
		OrderType:       string(order.Type),
		Status:          string(order.Status),
		Items:           items,
		Subtotal:        order.Subtotal.StringFixed(2),
		DiscountAmount:  order.DiscountAmount.StringFixed(2),
		TaxAmount:       order.TaxAmount.StringFixed(2),
		ShippingCost:    order.ShippingCost.StringFixed(2),
		Total:           order.Total.StringFixed(2),
		Carrier:         order.Carrier,
		TrackingNumber:  order.TrackingNumber,
		OrderDate:       order.OrderDate,
		ShippedDate:     order.ShippedDate,
		Capabilities: capabilitiesResponse{
			Cancellable: caps.Cancellable,
			Modifiable:  caps.Modifiable,
			Refundable:  caps.Refundable,
			Trackable:   caps.Trackable,
		},
	}
	if order.Payment != nil {
		resp.PaymentMethod = order.Payment.Method
		resp.TransactionID = order.Payment.TransactionID
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
