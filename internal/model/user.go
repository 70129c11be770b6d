package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is any account: customer, clerk, manager or admin.
// Loyalty fields are meaningful for customers, sales fields for clerks.
type User struct {
	BaseModel
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Name     string `gorm:"type:varchar(255)" json:"name" validate:"required"`
	Phone    string `gorm:"type:varchar(30)" json:"phone"`
	Role     Role   `gorm:"type:varchar(20);not null;index" json:"role" validate:"required,oneof=customer clerk manager admin"`

	// Customer
	LoyaltyPoints int64 `gorm:"not null;default:0" json:"loyalty_points"`

	// Clerk
	BoutiqueID   *uuid.UUID `gorm:"type:uuid;index" json:"boutique_id,omitempty"`
	SalesTarget  int64      `gorm:"not null;default:0" json:"sales_target"`
	CurrentSales int64      `gorm:"not null;default:0" json:"current_sales"`

	// Manager
	Boutiques []Boutique `gorm:"many2many:manager_boutiques;" json:"boutiques,omitempty"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// ManagesBoutique reports whether the user may see data of the given boutique.
// Admins see everything, clerks their own boutique, managers the boutiques assigned to them.
func (u *User) ManagesBoutique(id uuid.UUID) bool {
	switch u.Role {
	case RoleAdmin:
		return true
	case RoleClerk:
		return u.BoutiqueID != nil && *u.BoutiqueID == id
	case RoleManager:
		for _, b := range u.Boutiques {
			if b.ID == id {
				return true
			}
		}
	}
	return false
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID            uuid.UUID   `json:"id"`
	Email         string      `json:"email"`
	Name          string      `json:"name"`
	Phone         string      `json:"phone,omitempty"`
	Role          Role        `json:"role"`
	LoyaltyPoints int64       `json:"loyalty_points"`
	BoutiqueID    *uuid.UUID  `json:"boutique_id,omitempty"`
	SalesTarget   int64       `json:"sales_target,omitempty"`
	CurrentSales  int64       `json:"current_sales,omitempty"`
	BoutiqueIDs   []uuid.UUID `json:"boutique_ids,omitempty"`
	Privileges    []string    `json:"privileges"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	resp := UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Phone:         u.Phone,
		Role:          u.Role,
		LoyaltyPoints: u.LoyaltyPoints,
		BoutiqueID:    u.BoutiqueID,
		SalesTarget:   u.SalesTarget,
		CurrentSales:  u.CurrentSales,
		Privileges:    PrivilegeCodes(u.Role.Privileges()),
	}
	for _, b := range u.Boutiques {
		resp.BoutiqueIDs = append(resp.BoutiqueIDs, b.ID)
	}
	return resp
}
