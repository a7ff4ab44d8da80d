package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Profile struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"account_id"`
	FirstName string          `gorm:"not null;column:first_name" json:"first_name" validate:"required,min=2,max=50"`
	LastName  string          `gorm:"not null;column:last_name" json:"last_name" validate:"required,min=2,max=50"`
	Bio       string          `gorm:"column:bio" json:"bio" validate:"max=1000"`
	BirthDate *datatypes.Date `gorm:"column:birth_date" json:"birth_date,omitempty"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

func (Profile) TableName() string { return "profile" }

// ProfileInput is the profile payload accepted by account registration and
// modification. The 1:1 side is upserted from it, so it carries full values
// rather than a patch.
type ProfileInput struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Bio       string          `json:"bio"`
	BirthDate *datatypes.Date `json:"birth_date,omitempty"`
}

type ProfilePatch struct {
	FirstName *string         `json:"first_name,omitempty"`
	LastName  *string         `json:"last_name,omitempty"`
	Bio       *string         `json:"bio,omitempty"`
	BirthDate *datatypes.Date `json:"birth_date,omitempty"`
}

func (p ProfilePatch) Apply(pr *Profile) []string {
	var changed []string
	if p.FirstName != nil {
		pr.FirstName = *p.FirstName
		changed = append(changed, "FirstName")
	}
	if p.LastName != nil {
		pr.LastName = *p.LastName
		changed = append(changed, "LastName")
	}
	if p.Bio != nil {
		pr.Bio = *p.Bio
		changed = append(changed, "Bio")
	}
	if p.BirthDate != nil {
		pr.BirthDate = p.BirthDate
		changed = append(changed, "BirthDate")
	}
	return changed
}
