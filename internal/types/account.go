package types

import (
	"time"

	"github.com/google/uuid"
)

type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Handle    string    `gorm:"uniqueIndex;not null;column:handle" json:"handle" validate:"required,min=3,max=30"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email" validate:"required,email"`
	Profile   *Profile  `gorm:"constraint:OnDelete:CASCADE;foreignKey:AccountID;references:ID" json:"profile,omitempty"`
	Posts     []*Post   `gorm:"constraint:OnDelete:CASCADE;foreignKey:AccountID;references:ID" json:"posts,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Account) TableName() string { return "account" }

// AccountPatch carries the subset of account fields an update supplies.
// Nil means "leave unchanged".
type AccountPatch struct {
	Handle *string `json:"handle,omitempty"`
	Email  *string `json:"email,omitempty"`
}

// Apply copies the set fields onto the account and reports which struct
// fields changed, for partial revalidation.
func (p AccountPatch) Apply(a *Account) []string {
	var changed []string
	if p.Handle != nil {
		a.Handle = *p.Handle
		changed = append(changed, "Handle")
	}
	if p.Email != nil {
		a.Email = *p.Email
		changed = append(changed, "Email")
	}
	return changed
}

func (p AccountPatch) Empty() bool { return p.Handle == nil && p.Email == nil }
