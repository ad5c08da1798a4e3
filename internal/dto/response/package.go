package response

import "travel-booking/internal/data/entity"

type PackageResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Destination  string  `json:"destination"`
	DurationDays int     `json:"duration_days"`
	Price        float64 `json:"price"`
	MaxGroupSize *int    `json:"max_group_size,omitempty"`
	IsActive     bool    `json:"is_active"`
}

func PackageToResponse(p *entity.TravelPackage) PackageResponse {
	return PackageResponse{
		ID:           p.ID.String(),
		Title:        p.Title,
		Destination:  p.Destination,
		DurationDays: p.DurationDays,
		Price:        p.Price,
		MaxGroupSize: p.MaxGroupSize,
		IsActive:     p.IsActive,
	}
}
