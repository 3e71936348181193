package model

import "time"

const DefaultCategoryIcon = "fas fa-book"

type CategoryModel struct {
	CategoryID        uint      `gorm:"column:category_id;primaryKey;autoIncrement" json:"category_id"`
	CategoryName      string    `gorm:"column:category_name;type:varchar(100);not null;uniqueIndex:uq_categories_name" json:"category_name"`
	CategoryIcon      string    `gorm:"column:category_icon;type:varchar(50);not null" json:"category_icon"`
	CategoryCreatedAt time.Time `gorm:"column:category_created_at;autoCreateTime" json:"category_created_at"`
}

func (CategoryModel) TableName() string {
	return "categories"
}
