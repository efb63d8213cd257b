package models

type Account struct {
	BaseModel

	Name     string `json:"name" gorm:"uniqueIndex"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Password string `json:"-"`
	IsActive bool   `json:"is_active" gorm:"default:true"`

	Prompts []Prompt     `json:"prompts,omitempty"`
	Likes   []PromptLike `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
