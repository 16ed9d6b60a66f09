package handler

import (
	"time"

	"github.com/newsphere/content-service/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type submitArticleRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	Publisher   string   `json:"publisher"   validate:"required"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image"`
	IsPremium   bool     `json:"is_premium"`
	AuthorName  string   `json:"author_name"`
	AuthorImage string   `json:"author_image"`
}

type editArticleRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	Publisher   string   `json:"publisher"   validate:"required"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image"`
	IsPremium   bool     `json:"is_premium"`
}

type declineArticleRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// --- Response types ---

// articleResponse is the serialization of an article. is_approved is computed
// from status; the two can never disagree.
type articleResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Publisher     string    `json:"publisher"`
	Tags          []string  `json:"tags,omitempty"`
	Image         string    `json:"image,omitempty"`
	AuthorEmail   string    `json:"author_email"`
	AuthorName    string    `json:"author_name,omitempty"`
	AuthorImage   string    `json:"author_image,omitempty"`
	Status        string    `json:"status"`
	IsApproved    bool      `json:"is_approved"`
	IsPremium     bool      `json:"is_premium"`
	ViewCount     int64     `json:"view_count"`
	DeclineReason string    `json:"decline_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toArticleResponse(a *domain.Article) articleResponse {
	return articleResponse{
		ID:            a.ID,
		Title:         a.Title,
		Description:   a.Description,
		Publisher:     a.Publisher,
		Tags:          a.Tags,
		Image:         a.Image,
		AuthorEmail:   a.AuthorEmail,
		AuthorName:    a.AuthorName,
		AuthorImage:   a.AuthorImage,
		Status:        string(a.Status),
		IsApproved:    a.Approved(),
		IsPremium:     a.IsPremium,
		ViewCount:     a.ViewCount,
		DeclineReason: a.DeclineReason,
		CreatedAt:     a.CreatedAt,
	}
}

func toArticleListResponse(articles []*domain.Article) []articleResponse {
	out := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, toArticleResponse(a))
	}
	return out
}
