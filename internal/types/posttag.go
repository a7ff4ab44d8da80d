package types

import (
	"time"

	"github.com/google/uuid"
)

// PostTag is the join row behind Post.Tags. The composite unique index
// blocks duplicate assignments of the same tag to the same post.
type PostTag struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID uuid.UUID `gorm:"type:uuid;not null;index:idx_post_tag,unique,priority:1" json:"post_id"`
	TagID  uuid.UUID `gorm:"type:uuid;not null;index:idx_post_tag,unique,priority:2" json:"tag_id"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (PostTag) TableName() string { return "post_tag" }
