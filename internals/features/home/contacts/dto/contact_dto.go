package dto

import (
	"time"

	contactModel "library_backend/internals/features/home/contacts/model"
	contactService "library_backend/internals/features/home/contacts/service"
)

type CreateContactRequest struct {
	Name    string `json:"name" form:"name" validate:"required,max=200"`
	Email   string `json:"email" form:"email" validate:"required,email,max=254"`
	Subject string `json:"subject" form:"subject" validate:"required,max=300"`
	Message string `json:"message" form:"message" validate:"required,max=5000"`
}

func (r CreateContactRequest) ToInput() contactService.CreateInput {
	return contactService.CreateInput{
		Name:    r.Name,
		Email:   r.Email,
		Subject: r.Subject,
		Message: r.Message,
	}
}

type ContactResponse struct {
	ContactID        uint      `json:"contact_id"`
	ContactName      string    `json:"contact_name"`
	ContactEmail     string    `json:"contact_email"`
	ContactSubject   string    `json:"contact_subject"`
	ContactCreatedAt time.Time `json:"contact_created_at"`
}

func ToContactResponse(m contactModel.ContactModel) ContactResponse {
	return ContactResponse{
		ContactID:        m.ContactID,
		ContactName:      m.ContactName,
		ContactEmail:     m.ContactEmail,
		ContactSubject:   m.ContactSubject,
		ContactCreatedAt: m.ContactCreatedAt,
	}
}
