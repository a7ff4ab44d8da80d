package types

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`
	Account   *Account  `gorm:"constraint:OnDelete:CASCADE;foreignKey:AccountID;references:ID" json:"account,omitempty"`
	Title     string    `gorm:"not null;column:title" json:"title" validate:"required,min=5,max=200"`
	Body      string    `gorm:"not null;column:body" json:"body,omitempty" validate:"required,min=10,max=5000"`
	Published bool      `gorm:"not null;default:false;column:published" json:"published"`
	Tags      []*Tag    `gorm:"many2many:post_tag;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Post) TableName() string { return "post" }

type PostPatch struct {
	Title     *string `json:"title,omitempty"`
	Body      *string `json:"body,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

func (p PostPatch) Apply(post *Post) []string {
	var changed []string
	if p.Title != nil {
		post.Title = *p.Title
		changed = append(changed, "Title")
	}
	if p.Body != nil {
		post.Body = *p.Body
		changed = append(changed, "Body")
	}
	if p.Published != nil {
		post.Published = *p.Published
		changed = append(changed, "Published")
	}
	return changed
}

// PostFilter narrows post listings. Nil fields match everything.
type PostFilter struct {
	AccountID *uuid.UUID
	Published *bool
}
