package handler

import (
	"time"

	"simbahan/internal/church/models"
	"simbahan/internal/church/service"
)

// ChurchResponse is the wire form of a church record.
type ChurchResponse struct {
	ID        string         `json:"id"`
	Diocese   string         `json:"diocese"`
	Status    string         `json:"status"`
	Profile   models.Profile `json:"profile"`
	Version   int64          `json:"version"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ClassificationResponse is the wire form of a classifier verdict.
type ClassificationResponse struct {
	Score      int    `json:"score"`
	Confidence string `json:"confidence"`
	IsHeritage bool   `json:"is_heritage"`
}

// MutationResponse pairs a record with the classification its profile earned.
type MutationResponse struct {
	Church         ChurchResponse         `json:"church"`
	Classification ClassificationResponse `json:"classification"`
}

// ListResponse wraps directory and listing results.
type ListResponse struct {
	Churches []ChurchResponse `json:"churches"`
}

func FromChurch(c *models.Church) ChurchResponse {
	return ChurchResponse{
		ID:        c.ID.String(),
		Diocese:   string(c.Diocese),
		Status:    c.Status.String(),
		Profile:   c.Profile,
		Version:   c.Version,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromClassification(c models.Classification) ClassificationResponse {
	return ClassificationResponse{
		Score:      c.Score,
		Confidence: string(c.Confidence),
		IsHeritage: c.IsHeritage,
	}
}

func FromMutation(res *service.CreateResult) MutationResponse {
	return MutationResponse{
		Church:         FromChurch(res.Church),
		Classification: FromClassification(res.Classification),
	}
}

func FromChurches(churches []models.Church) ListResponse {
	out := ListResponse{Churches: make([]ChurchResponse, 0, len(churches))}
	for i := range churches {
		out.Churches = append(out.Churches, FromChurch(&churches[i]))
	}
	return out
}
