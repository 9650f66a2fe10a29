package models

// User is the client-facing user entity. The password digest is never
// serialised.
type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	HashedPassword string `json:"-"`
}

// UserRow is the storage row shape (snake_case columns). The JSON tags
// mirror the column names so the order aggregation query can serialise a
// whole user row into one object column.
type UserRow struct {
	ID             int64  `gorm:"primaryKey" json:"id"`
	Email          string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	FirstName      string `gorm:"column:first_name;size:255;not null" json:"first_name"`
	LastName       string `gorm:"column:last_name;size:255;not null" json:"last_name"`
	HashedPassword string `gorm:"column:hashed_password;size:255;not null" json:"hashed_password"`
}

func (UserRow) TableName() string { return "users" }

// UserFromRow maps a storage row to the entity shape. This transform and
// UserToRow are the single place the column naming is absorbed.
func UserFromRow(r UserRow) User {
	return User{
		ID:             r.ID,
		Email:          r.Email,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		HashedPassword: r.HashedPassword,
	}
}

// UserToRow maps an entity back to its storage row.
func UserToRow(u User) UserRow {
	return UserRow{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		HashedPassword: u.HashedPassword,
	}
}

// CreateUserInput is the signup payload. Email and password are immutable
// after creation.
type CreateUserInput struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// UpdateUserInput carries the only user fields that may change.
type UpdateUserInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// LoginInput is the credential payload for token issuance.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
