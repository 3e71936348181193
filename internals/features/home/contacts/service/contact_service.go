package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	contactModel "library_backend/internals/features/home/contacts/model"
)

type CreateInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*contactModel.ContactModel, error) {
	m := contactModel.ContactModel{
		ContactName:    strings.TrimSpace(in.Name),
		ContactEmail:   strings.TrimSpace(in.Email),
		ContactSubject: strings.TrimSpace(in.Subject),
		ContactMessage: strings.TrimSpace(in.Message),
	}
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return &m, nil
}
