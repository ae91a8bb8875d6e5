package users

import (
	"time"

	"github.com/Taqieddin-qattousa/storefront-backend/pkg/db/models"
)

// UserDTO is the transport shape that omits the stored credential hash.
type UserDTO struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	FirstName      string
	LastName       string
	CredentialHash string
}

// RegisteredUserDTO is returned from registration and carries the freshly
// minted access token alongside the public user fields.
type RegisteredUserDTO struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func FromModels(list []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		CredentialHash: c.CredentialHash,
	}
}
