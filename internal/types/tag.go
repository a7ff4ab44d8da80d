package types

import (
	"time"

	"github.com/google/uuid"
)

type Tag struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;column:name" json:"name" validate:"required,min=2,max=50"`
	Description string    `gorm:"column:description" json:"description,omitempty" validate:"max=500"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Tag) TableName() string { return "tag" }

type TagPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p TagPatch) Apply(t *Tag) []string {
	var changed []string
	if p.Name != nil {
		t.Name = *p.Name
		changed = append(changed, "Name")
	}
	if p.Description != nil {
		t.Description = *p.Description
		changed = append(changed, "Description")
	}
	return changed
}
