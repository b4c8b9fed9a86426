package models

// CategoryModel groups posts. Posts in an unpublished category are hidden.
type CategoryModel struct {
	ID          uint   `json:"id"          gorm:"primaryKey"`
	Title       string `json:"title"       gorm:"size:256;not null"`
	Description string `json:"description" gorm:"type:text"`
	Slug        string `json:"slug"        gorm:"size:64;uniqueIndex;not null"`
	Published
}

func (CategoryModel) TableName() string { return "categories" }
