package models

// LocationModel is a place a post can be tagged with.
type LocationModel struct {
	ID   uint   `json:"id"   gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:256;not null"`
	Published
}

func (LocationModel) TableName() string { return "locations" }
