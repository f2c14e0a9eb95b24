package together

import (
	"time"

	"github.com/team-moa/moa-api-server/internal/model"
)

type CreateTogetherRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"max=2000"`
	Category    string     `json:"category" binding:"max=50"`
	Mode        string     `json:"mode" binding:"omitempty,oneof=ONLINE OFFLINE"`
	Capacity    int        `json:"capacity" binding:"required,min=2,max=1000"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

type UpdateTogetherRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Category    *string    `json:"category" binding:"omitempty,max=50"`
	Capacity    *int       `json:"capacity" binding:"omitempty,min=2,max=1000"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Status      *string    `json:"status" binding:"omitempty,oneof=RECRUITING ONGOING CLOSED"`
}

type TogetherResponse struct {
	ID               int64      `json:"id"`
	OrganizerID      int64      `json:"organizerId"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Category         string     `json:"category"`
	Mode             string     `json:"mode"`
	Capacity         int        `json:"capacity"`
	ParticipantCount int64      `json:"participantCount"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
}

func NewTogetherResponse(t *model.Together, participantCount int64) *TogetherResponse {
	return &TogetherResponse{
		ID:               t.ID,
		OrganizerID:      t.MemberID,
		Title:            t.Title,
		Description:      t.Description,
		Category:         t.Category,
		Mode:             t.Mode,
		Capacity:         t.Capacity,
		ParticipantCount: participantCount,
		StartDate:        t.StartDate,
		EndDate:          t.EndDate,
		Status:           string(t.Status),
		CreatedAt:        t.CreatedAt,
	}
}
