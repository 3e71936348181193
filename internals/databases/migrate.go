package database

import (
	"log"

	"gorm.io/gorm"

	visitLogModel "library_backend/internals/features/audit/visit_logs/model"
	authorModel "library_backend/internals/features/catalog/authors/model"
	bookModel "library_backend/internals/features/catalog/books/model"
	categoryModel "library_backend/internals/features/catalog/categories/model"
	borrowingModel "library_backend/internals/features/circulation/borrowings/model"
	reviewModel "library_backend/internals/features/circulation/reviews/model"
	contactModel "library_backend/internals/features/home/contacts/model"
	authModel "library_backend/internals/features/users/auth/model"
	userModel "library_backend/internals/features/users/user/model"
	userProfileModel "library_backend/internals/features/users/user_profiles/model"
)

// Models: urutan parent → child supaya FK terbentuk rapi.
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&userProfileModel.UserProfileModel{},
		&authModel.RevokedSessionModel{},
		&authorModel.AuthorModel{},
		&categoryModel.CategoryModel{},
		&bookModel.BookModel{},
		&borrowingModel.BorrowingModel{},
		&reviewModel.ReviewModel{},
		&contactModel.ContactModel{},
		&visitLogModel.VisitLogModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	log.Println("✅ Migrasi schema selesai")
	return nil
}
