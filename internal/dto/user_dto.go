package dto

import "github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"

type CreateUserRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Name  string `json:"name" validate:"required,max=255"`
	Phone string `json:"phone" validate:"max=50"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Phone    *string `json:"phone" validate:"omitempty,max=50"`
	IsActive *bool   `json:"is_active"`
}

type UsersResponse struct {
	Users  []models.ProjectUser `json:"users"`
	Total  int                  `json:"total"`
	Filter string               `json:"filter"`
}

type UserMutationResponse struct {
	User  *models.ProjectUser `json:"user,omitempty"`
	Users UsersResponse       `json:"list"`
}

type UpdateAdminRequest struct {
	Name     *string      `json:"name" validate:"omitempty,max=255"`
	Role     *models.Role `json:"role" validate:"omitempty,oneof=admin moderator viewer"`
	IsActive *bool        `json:"is_active"`
}

type AdminsResponse struct {
	Admins []models.AdminUser `json:"admins"`
	Total  int                `json:"total"`
}
