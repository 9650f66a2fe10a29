package seeders

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/auth"
)

func init() {
	Register("users", SeedUsers)
	Register("products", SeedProducts)
}

// SeedUsers inserts a couple of demo accounts. Re-running is safe, rows
// are matched by email.
func SeedUsers(db *gorm.DB) error {
	demo := []struct {
		email, first, last, password string
	}{
		{"ada@example.com", "Ada", "Lovelace", "password123"},
		{"alan@example.com", "Alan", "Turing", "password123"},
	}

	for _, d := range demo {
		hashed, err := auth.HashPassword(d.password)
		if err != nil {
			return err
		}

		row := models.UserRow{
			Email:          d.email,
			FirstName:      d.first,
			LastName:       d.last,
			HashedPassword: hashed,
		}
		if err := db.Where(models.UserRow{Email: d.email}).FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedProducts inserts a small demo catalog, matched by name.
func SeedProducts(db *gorm.DB) error {
	demo := []models.ProductRow{
		{Name: "Keyboard", Price: 49.99, Popularity: 7},
		{Name: "Mouse", Price: 19.99, Popularity: 9},
		{Name: "Monitor", Price: 199.00, Popularity: 4},
		{Name: "Desk Lamp", Price: 24.50, Popularity: 2},
	}

	for _, p := range demo {
		row := p
		if err := db.Where(models.ProductRow{Name: p.Name}).FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
