package dto

import (
	"time"

	reviewModel "library_backend/internals/features/circulation/reviews/model"
)

// ============================
// Request
// ============================

type CreateReviewRequest struct {
	Rating  int    `json:"rating" form:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" form:"comment" validate:"max=5000"`
}

// ============================
// Response
// ============================

type ReviewResponse struct {
	ReviewID       uint      `json:"review_id"`
	ReviewBookID   uint      `json:"review_book_id"`
	ReviewRating   int       `json:"review_rating"`
	ReviewComment  string    `json:"review_comment"`
	ReviewUserName string    `json:"review_user_name"`
	ReviewCreated  time.Time `json:"review_created_at"`
}

func ToReviewResponse(m reviewModel.ReviewModel) ReviewResponse {
	out := ReviewResponse{
		ReviewID:      m.ReviewID,
		ReviewBookID:  m.ReviewBookID,
		ReviewRating:  m.ReviewRating,
		ReviewComment: m.ReviewComment,
		ReviewCreated: m.ReviewCreatedAt,
	}
	if m.User != nil {
		out.ReviewUserName = m.User.DisplayName()
	}
	return out
}

func ToReviewResponses(list []reviewModel.ReviewModel) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(list))
	for _, r := range list {
		out = append(out, ToReviewResponse(r))
	}
	return out
}
