package model

import "time"

type ContactModel struct {
	ContactID        uint      `gorm:"column:contact_id;primaryKey;autoIncrement" json:"contact_id"`
	ContactName      string    `gorm:"column:contact_name;type:varchar(200);not null" json:"contact_name"`
	ContactEmail     string    `gorm:"column:contact_email;type:varchar(254);not null" json:"contact_email"`
	ContactSubject   string    `gorm:"column:contact_subject;type:varchar(300);not null" json:"contact_subject"`
	ContactMessage   string    `gorm:"column:contact_message;type:text;not null" json:"contact_message"`
	ContactCreatedAt time.Time `gorm:"column:contact_created_at;autoCreateTime;index:idx_contacts_created_at" json:"contact_created_at"`
}

func (ContactModel) TableName() string {
	return "contacts"
}
