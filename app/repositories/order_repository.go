package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

// ErrNoProducts guards the invariant that an order always has at least
// one line item.
var ErrNoProducts = errors.New("order requires at least one product")

// OrderRepository handles database operations for Order and its line
// items. Reads assemble the nested order shape in a single aggregated
// join; creation is a transactional multi-row insert.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// GetAll returns every order in its nested shape, optionally restricted
// to one owner.
func (r *OrderRepository) GetAll(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	where := ""
	var args []interface{}
	if filter.UserID != nil {
		where = "WHERE orders.user_id = ?"
		args = append(args, *filter.UserID)
	}

	var rows []models.OrderQueryRow
	if err := r.db.WithContext(ctx).
		Raw(r.aggregateSQL(where), args...).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		order, err := models.OrderFromQueryRow(row)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var rows []models.OrderQueryRow
	if err := r.db.WithContext(ctx).
		Raw(r.aggregateSQL("WHERE orders.id = ?"), id).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	order, err := models.OrderFromQueryRow(rows[0])
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Create inserts the order header and one order_items row per requested
// product inside a single transaction: any item failure (such as a
// product id that violates the foreign key) rolls back the header insert
// too, so a partial order is never observable. After commit the order is
// re-read through the aggregation path, so the response has exactly the
// shape and freshness of a later GetByID.
func (r *OrderRepository) Create(ctx context.Context, input models.CreateOrderInput) (*models.Order, error) {
	if len(input.Products) == 0 {
		return nil, ErrNoProducts
	}

	status := input.Status
	if status == "" {
		status = string(models.OrderActive)
	}

	start := time.Now()
	var orderID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Raw("INSERT INTO orders (status, user_id) VALUES (?, ?) RETURNING id", status, input.UserID).
			Scan(&orderID).Error; err != nil {
			return err
		}

		for _, product := range input.Products {
			if err := tx.
				Exec("INSERT INTO order_items (order_id, product_id, quantity) VALUES (?, ?, ?)",
					orderID, product.ID, product.Quantity).Error; err != nil {
				return err
			}
		}
		return nil
	})
	metrics.ObserveDBQuery("insert", start)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, orderID)
}

// UpdateStatus updates the header row and re-reads the order. Not
// transactional: it touches a single row. Returns nil when the id does
// not exist.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, input models.UpdateOrderStatusInput) (*models.Order, error) {
	start := time.Now()

	var updatedID int64
	result := r.db.WithContext(ctx).
		Raw("UPDATE orders SET status = ? WHERE id = ? RETURNING id", input.Status, id).
		Scan(&updatedID)
	metrics.ObserveDBQuery("update", start)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, updatedID)
}

// aggregateSQL builds the one-statement read query: orders inner-joined
// to users, order_items and products, grouped per order, with the user
// row serialised into one JSON object column and the product+quantity
// pairs aggregated into one JSON array column. Doing the aggregation in
// the query avoids N+1 round trips and yields a consistent snapshot of
// order, items, user and products in one read. Postgres and SQLite
// dialects only.
func (r *OrderRepository) aggregateSQL(where string) string {
	userObject := r.jsonObject(
		"'id'", "users.id",
		"'email'", "users.email",
		"'first_name'", "users.first_name",
		"'last_name'", "users.last_name",
		"'hashed_password'", "users.hashed_password",
	)
	productObject := r.jsonObject(
		"'id'", "products.id",
		"'name'", "products.name",
		"'price'", "products.price",
		"'popularity'", "products.popularity",
	)
	pairObject := r.jsonObject(
		"'information'", productObject,
		"'quantity'", "order_items.quantity",
	)

	return fmt.Sprintf(`
		SELECT orders.id, orders.status, %s AS "user", %s AS products
		FROM orders
		INNER JOIN users ON orders.user_id = users.id
		INNER JOIN order_items ON orders.id = order_items.order_id
		INNER JOIN products ON order_items.product_id = products.id
		%s
		GROUP BY orders.id, orders.status, users.id, users.email, users.first_name, users.last_name, users.hashed_password`,
		userObject, r.jsonArrayAgg(pairObject), where)
}

func (r *OrderRepository) jsonObject(pairs ...string) string {
	fn := "json_build_object"
	if r.db.Dialector.Name() == "sqlite" {
		fn = "json_object"
	}

	args := ""
	for i, p := range pairs {
		if i > 0 {
			args += ", "
		}
		args += p
	}
	return fn + "(" + args + ")"
}

func (r *OrderRepository) jsonArrayAgg(expr string) string {
	if r.db.Dialector.Name() == "sqlite" {
		return "json_group_array(" + expr + ")"
	}
	return "json_agg(" + expr + ")"
}
