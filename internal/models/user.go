package models

import "time"

// User represents an account owning tasks. PasswordHash is a bcrypt hash,
// never the plain password.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"unique;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}
