package models

import (
	"encoding/json"
	"fmt"
)

// OrderStatus enumerates the known order states.
type OrderStatus string

const (
	OrderActive    OrderStatus = "active"
	OrderCompleted OrderStatus = "completed"
	OrderCanceled  OrderStatus = "canceled"
)

// OrderProduct is a product annotated with the ordered quantity.
type OrderProduct struct {
	Product
	Quantity int `json:"quantity"`
}

// Order is the client-facing order shape: the header plus the full user
// (password-stripped via the User entity) and the products with their
// quantities. This nesting is a read-time projection, not a stored
// structure.
type Order struct {
	ID       int64          `json:"id"`
	Status   OrderStatus    `json:"status"`
	User     User           `json:"user"`
	Products []OrderProduct `json:"products"`
}

// OrderRow is the stored order header.
type OrderRow struct {
	ID     int64  `gorm:"primaryKey" json:"id"`
	UserID int64  `gorm:"column:user_id;not null;index" json:"user_id"`
	Status string `gorm:"size:50;not null;default:active" json:"status"`

	User UserRow `gorm:"foreignKey:UserID" json:"-"`
}

func (OrderRow) TableName() string { return "orders" }

// OrderItemRow links one order to one product with a quantity. A pure
// junction row with no identity of its own.
type OrderItemRow struct {
	OrderID   int64 `gorm:"column:order_id;primaryKey;autoIncrement:false" json:"order_id"`
	ProductID int64 `gorm:"column:product_id;primaryKey;autoIncrement:false" json:"product_id"`
	Quantity  int   `gorm:"not null" json:"quantity"`

	Order   OrderRow   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	Product ProductRow `gorm:"foreignKey:ProductID" json:"-"`
}

func (OrderItemRow) TableName() string { return "order_items" }

// OrderQueryRow is the shape produced by the aggregation read query: the
// header columns plus one JSON object column holding the user row and one
// JSON array column holding the product+quantity pairs.
type OrderQueryRow struct {
	ID       int64  `gorm:"column:id"`
	Status   string `gorm:"column:status"`
	User     []byte `gorm:"column:user"`
	Products []byte `gorm:"column:products"`
}

type orderQueryProduct struct {
	Information ProductRow `json:"information"`
	Quantity    int        `json:"quantity"`
}

// OrderFromQueryRow flattens an aggregation result row into the
// client-facing Order: the user row loses its password digest through the
// User entity, and each product pair becomes {...product, quantity}.
func OrderFromQueryRow(r OrderQueryRow) (Order, error) {
	var userRow UserRow
	if err := json.Unmarshal(r.User, &userRow); err != nil {
		return Order{}, fmt.Errorf("order %d: decode user column: %w", r.ID, err)
	}

	var pairs []orderQueryProduct
	if err := json.Unmarshal(r.Products, &pairs); err != nil {
		return Order{}, fmt.Errorf("order %d: decode products column: %w", r.ID, err)
	}

	order := Order{
		ID:       r.ID,
		Status:   OrderStatus(r.Status),
		User:     UserFromRow(userRow),
		Products: make([]OrderProduct, 0, len(pairs)),
	}
	for _, p := range pairs {
		order.Products = append(order.Products, OrderProduct{
			Product:  ProductFromRow(p.Information),
			Quantity: p.Quantity,
		})
	}

	return order, nil
}

// OrderProductInput is one requested line item.
type OrderProductInput struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

// CreateOrderInput is the order creation payload. UserID is never read
// from the request body; the controller fills it from the token subject.
type CreateOrderInput struct {
	Status   string              `json:"status" validate:"nullable,in=active,completed,canceled"`
	UserID   int64               `json:"-"`
	Products []OrderProductInput `json:"products" validate:"required"`
}

// UpdateOrderStatusInput restricts status updates to the known states.
type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required,in=active,completed,canceled"`
}

// OrderFilter narrows order reads to one owner when UserID is set.
type OrderFilter struct {
	UserID *int64
}
