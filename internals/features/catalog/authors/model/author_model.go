package model

import "time"

type AuthorModel struct {
	AuthorID        uint      `gorm:"column:author_id;primaryKey;autoIncrement" json:"author_id"`
	AuthorName      string    `gorm:"column:author_name;type:varchar(200);not null;index:idx_authors_name" json:"author_name"`
	AuthorBio       string    `gorm:"column:author_bio;type:text" json:"author_bio"`
	AuthorPhoto     string    `gorm:"column:author_photo;type:varchar(500)" json:"author_photo"`
	AuthorCreatedAt time.Time `gorm:"column:author_created_at;autoCreateTime" json:"author_created_at"`
	AuthorUpdatedAt time.Time `gorm:"column:author_updated_at;autoUpdateTime" json:"author_updated_at"`
}

// TableName sets the table name for AuthorModel
func (AuthorModel) TableName() string {
	return "authors"
}
