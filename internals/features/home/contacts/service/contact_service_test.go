package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library_backend/internals/databases/dbtest"
	contactModel "library_backend/internals/features/home/contacts/model"
)

func TestCreateTrimsAndStores(t *testing.T) {
	db := dbtest.NewTestDB(t)

	m, err := New(db).Create(context.Background(), CreateInput{
		Name:    "  Ada ",
		Email:   " ada@example.com ",
		Subject: " Opening hours ",
		Message: "  Are you open on Sunday?  ",
	})
	require.NoError(t, err)
	assert.NotZero(t, m.ContactID)

	var got contactModel.ContactModel
	require.NoError(t, db.First(&got, "contact_id = ?", m.ContactID).Error)
	assert.Equal(t, "Ada", got.ContactName)
	assert.Equal(t, "ada@example.com", got.ContactEmail)
	assert.Equal(t, "Opening hours", got.ContactSubject)
	assert.Equal(t, "Are you open on Sunday?", got.ContactMessage)
	assert.False(t, got.ContactCreatedAt.IsZero())
}
