package models

// Product represents a product in the catalogue. Products have no owner.
type Product struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Popularity int     `json:"popularity"`
}

// ProductRow is the storage row shape.
type ProductRow struct {
	ID         int64   `gorm:"primaryKey" json:"id"`
	Name       string  `gorm:"size:255;not null" json:"name"`
	Price      float64 `gorm:"not null" json:"price"`
	Popularity int     `gorm:"not null;default:0" json:"popularity"`
}

func (ProductRow) TableName() string { return "products" }

func ProductFromRow(r ProductRow) Product {
	return Product{
		ID:         r.ID,
		Name:       r.Name,
		Price:      r.Price,
		Popularity: r.Popularity,
	}
}

func ProductToRow(p Product) ProductRow {
	return ProductRow{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Popularity: p.Popularity,
	}
}

// CreateProductInput and UpdateProductInput share one shape: a missing
// popularity falls back to 0. Price is expected to be non-negative but is
// not enforced.
type CreateProductInput struct {
	Name       string  `json:"name" validate:"required"`
	Price      float64 `json:"price"`
	Popularity int     `json:"popularity"`
}

type UpdateProductInput struct {
	Name       string  `json:"name" validate:"required"`
	Price      float64 `json:"price"`
	Popularity int     `json:"popularity"`
}
