package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

var _ Repository[models.User, models.CreateUserInput, models.UpdateUserInput] = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, email, first_name, last_name, hashed_password"

func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var rows []models.UserRow
	if err := r.db.WithContext(ctx).
		Raw("SELECT " + userColumns + " FROM users").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, models.UserFromRow(row))
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var rows []models.UserRow
	if err := r.db.WithContext(ctx).
		Raw("SELECT "+userColumns+" FROM users WHERE id = ?", id).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	user := models.UserFromRow(rows[0])
	return &user, nil
}

// Create hashes the password and inserts the row. A duplicate email
// violates the unique index and the store error propagates as-is.
func (r *UserRepository) Create(ctx context.Context, input models.CreateUserInput) (*models.User, error) {
	defer metrics.ObserveDBQuery("insert", time.Now())

	digest, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	var rows []models.UserRow
	if err := r.db.WithContext(ctx).
		Raw("INSERT INTO users (email, first_name, last_name, hashed_password) VALUES (?, ?, ?, ?) RETURNING "+userColumns,
			input.Email, input.FirstName, input.LastName, digest).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	// Some drivers report a constraint violation as an empty result set
	// rather than an error.
	if len(rows) == 0 {
		return nil, fmt.Errorf("users: insert %q returned no row", input.Email)
	}

	user := models.UserFromRow(rows[0])
	return &user, nil
}

// Update changes the name fields only; email and password are immutable
// after creation. Returns nil when the id does not exist.
func (r *UserRepository) Update(ctx context.Context, id int64, input models.UpdateUserInput) (*models.User, error) {
	defer metrics.ObserveDBQuery("update", time.Now())

	var rows []models.UserRow
	if err := r.db.WithContext(ctx).
		Raw("UPDATE users SET first_name = ?, last_name = ? WHERE id = ? RETURNING "+userColumns,
			input.FirstName, input.LastName, id).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	user := models.UserFromRow(rows[0])
	return &user, nil
}

// Delete is idempotent: a missing id still reports true.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	defer metrics.ObserveDBQuery("delete", time.Now())

	if err := r.db.WithContext(ctx).
		Exec("DELETE FROM users WHERE id = ?", id).Error; err != nil {
		return false, err
	}
	return true, nil
}

// GetByCredentials looks up by email and verifies the password. Unknown
// email and wrong password both return nil — callers cannot, and must
// not, distinguish the two.
func (r *UserRepository) GetByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var rows []models.UserRow
	if err := r.db.WithContext(ctx).
		Raw("SELECT "+userColumns+" FROM users WHERE email = ?", email).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	if !auth.CheckPassword(password, rows[0].HashedPassword) {
		return nil, nil
	}

	user := models.UserFromRow(rows[0])
	return &user, nil
}

// Exists reports whether a user id references a stored row. The auth
// middleware uses it to reject tokens for deleted users.
func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}
