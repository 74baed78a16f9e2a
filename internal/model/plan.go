package model

import "time"

// Plan is a subscription offer. Duration is in months, Price is monthly.
type Plan struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null;uniqueIndex" json:"title"`
	Duration  int       `gorm:"not null" json:"duration"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalPrice is what a student pays for the whole plan.
func (p *Plan) TotalPrice() float64 {
	return float64(p.Duration) * p.Price
}
