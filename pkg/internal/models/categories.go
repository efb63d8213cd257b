package models

type Tag struct {
	BaseModel

	Name    string   `json:"name" gorm:"uniqueIndex"`
	Prompts []Prompt `json:"prompts,omitempty" gorm:"many2many:prompt_tags"`
}

type Category struct {
	BaseModel

	Name        string   `json:"name" gorm:"uniqueIndex"`
	Description string   `json:"description"`
	Prompts     []Prompt `json:"prompts,omitempty"`
}
