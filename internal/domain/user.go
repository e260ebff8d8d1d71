package domain

import (
	"time"
)

// Role is the single role a user holds at any time. Stored as a plain
// string column instead of a lookup table so a missing lookup row can
// never break an authorization check.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller || r == RoleAdmin
}

// IsSeller and IsAdmin are independent capability flags, not a
// hierarchy. Seller-gated operations accept either flag explicitly.
func (r Role) IsSeller() bool { return r == RoleSeller }
func (r Role) IsAdmin() bool  { return r == RoleAdmin }

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	FirstName    string    `json:"firstName" gorm:"size:100;not null"`
	LastName     string    `json:"lastName" gorm:"size:100;not null"`
	DisplayName  string    `json:"displayName" gorm:"size:150"`
	Role         Role      `json:"role" gorm:"size:16;not null;default:buyer"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CanManageCatalog reports whether the user may mutate flowers, lookup
// tables, and order status. Buyer-only operations use the inverse.
func (u *User) CanManageCatalog() bool {
	return u.Role.IsSeller() || u.Role.IsAdmin()
}
