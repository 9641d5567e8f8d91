package models

import "time"

// Customer accumulates a cancellation counter: it is incremented whenever a
// confirmed booking is cancelled on the customer's account (late cancellation
// approvals and attendance-path cancellations), never for plain no-show marks.
type Customer struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"not null" json:"name"`
	TotalCancellations int       `gorm:"not null;default:0" json:"total_cancellations"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type Teacher struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
