package entity

type TravelPackage struct {
	Base
	Title        string  `db:"title"`
	Destination  string  `db:"destination"`
	DurationDays int     `db:"duration_days"`
	Price        float64 `db:"price"`
	MaxGroupSize *int    `db:"max_group_size"`
	IsActive     bool    `db:"is_active"`
}
