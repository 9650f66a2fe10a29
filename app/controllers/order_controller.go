package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/apperr"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

type OrderController struct {
	orders *repositories.OrderRepository
}

func NewOrderController(orders *repositories.OrderRepository) *OrderController {
	return &OrderController{orders: orders}
}

// GetOrders lists orders in their nested shape, optionally filtered by
// ?userId=. An unknown userId yields an empty list, not an error.
func (c *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	var filter models.OrderFilter
	if raw := r.URL.Query().Get("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(w, apperr.NewBadRequest("Invalid userId"))
			return
		}
		filter.UserID = &id
	}

	orders, err := c.orders.GetAll(r.Context(), filter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, orders)
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "orderId")
	if err != nil {
		response.Error(w, err)
		return
	}

	order, err := c.orders.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	if order == nil {
		response.Error(w, apperr.NewNotFound("Order not found"))
		return
	}
	response.OK(w, order)
}

// CreateOrder creates an order for the token subject. The owning user id
// is never taken from the request body.
func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var input models.CreateOrderInput
	if err := decode(r, &input); err != nil {
		response.Error(w, err)
		return
	}

	subject, ok := auth.SubjectFromCtx(r.Context())
	if !ok {
		response.Error(w, apperr.NewUnauthorized("Invalid token"))
		return
	}
	input.UserID = subject

	order, err := c.orders.Create(r.Context(), input)
	if errors.Is(err, repositories.ErrNoProducts) {
		response.Error(w, apperr.NewBadRequest(err.Error()))
		return
	}
	if err != nil {
		response.Error(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("order created", "order_id", order.ID, "user_id", subject)
	response.Created(w, order)
}

// UpdateOrderStatus changes the status of an order the caller owns.
func (c *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "orderId")
	if err != nil {
		response.Error(w, err)
		return
	}

	order, err := c.orders.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	if order == nil {
		response.Error(w, apperr.NewNotFound("Order not found"))
		return
	}

	subject, _ := auth.SubjectFromCtx(r.Context())
	if order.User.ID != subject {
		response.Error(w, apperr.NewForbidden("No permission"))
		return
	}

	var input models.UpdateOrderStatusInput
	if err := decode(r, &input); err != nil {
		response.Error(w, err)
		return
	}

	updated, err := c.orders.UpdateStatus(r.Context(), id, input)
	if err != nil {
		response.Error(w, err)
		return
	}
	if updated == nil {
		response.Error(w, apperr.NewNotFound("Order not found"))
		return
	}
	response.OK(w, updated)
}
