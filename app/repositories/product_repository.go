package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

var _ Repository[models.Product, models.CreateProductInput, models.UpdateProductInput] = (*ProductRepository)(nil)

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = "id, name, price, popularity"

func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var rows []models.ProductRow
	if err := r.db.WithContext(ctx).
		Raw("SELECT " + productColumns + " FROM products").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, models.ProductFromRow(row))
	}
	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var rows []models.ProductRow
	if err := r.db.WithContext(ctx).
		Raw("SELECT "+productColumns+" FROM products WHERE id = ?", id).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	product := models.ProductFromRow(rows[0])
	return &product, nil
}

func (r *ProductRepository) Create(ctx context.Context, input models.CreateProductInput) (*models.Product, error) {
	defer metrics.ObserveDBQuery("insert", time.Now())

	var rows []models.ProductRow
	if err := r.db.WithContext(ctx).
		Raw("INSERT INTO products (name, price, popularity) VALUES (?, ?, ?) RETURNING "+productColumns,
			input.Name, input.Price, input.Popularity).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	// Some drivers report a constraint violation as an empty result set
	// rather than an error.
	if len(rows) == 0 {
		return nil, fmt.Errorf("products: insert %q returned no row", input.Name)
	}

	product := models.ProductFromRow(rows[0])
	return &product, nil
}

func (r *ProductRepository) Update(ctx context.Context, id int64, input models.UpdateProductInput) (*models.Product, error) {
	defer metrics.ObserveDBQuery("update", time.Now())

	var rows []models.ProductRow
	if err := r.db.WithContext(ctx).
		Raw("UPDATE products SET name = ?, price = ?, popularity = ? WHERE id = ? RETURNING "+productColumns,
			input.Name, input.Price, input.Popularity, id).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	product := models.ProductFromRow(rows[0])
	return &product, nil
}

// Delete is idempotent: a missing id still reports true.
func (r *ProductRepository) Delete(ctx context.Context, id int64) (bool, error) {
	defer metrics.ObserveDBQuery("delete", time.Now())

	if err := r.db.WithContext(ctx).
		Exec("DELETE FROM products WHERE id = ?", id).Error; err != nil {
		return false, err
	}
	return true, nil
}
