package models

import "time"

type Prompt struct {
	BaseModel

	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Description *string `json:"description"`
	Language    string  `json:"language"`

	Tags []Tag `json:"tags" gorm:"many2many:prompt_tags;constraint:OnDelete:CASCADE"`

	CategoryID *uint     `json:"category_id"`
	Category   *Category `json:"category" gorm:"constraint:OnDelete:SET NULL"`

	AccountID *uint    `json:"account_id"`
	Account   *Account `json:"account,omitempty"`

	LikeCount int          `json:"like_count" gorm:"not null;default:0"`
	Likes     []PromptLike `json:"-" gorm:"constraint:OnDelete:CASCADE"`

	IsLiked bool `json:"is_liked" gorm:"-"`
}

type PromptLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AccountID uint      `json:"account_id" gorm:"uniqueIndex:uix_prompt_likes_pair;not null"`
	PromptID  uint      `json:"prompt_id" gorm:"uniqueIndex:uix_prompt_likes_pair;not null"`
	CreatedAt time.Time `json:"created_at"`
}
