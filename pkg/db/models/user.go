package models

import "time"

// User represents the canonical identity entity. The credential hash never
// leaves the process: it is excluded from JSON and from every read path.
type User struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FirstName      string    `gorm:"column:first_name;not null" json:"first_name"`
	LastName       string    `gorm:"column:last_name;not null" json:"last_name"`
	CredentialHash string    `gorm:"column:credential_hash;not null" json:"-"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
