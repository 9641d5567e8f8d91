package models

import "time"

type PackageStatus string

const (
	PackageActive  PackageStatus = "active"
	PackageUsed    PackageStatus = "used"
	PackageExpired PackageStatus = "expired"
)

// Package is a prepaid bundle of sessions owned by one customer.
// RemainingSessions is a display cache mutated only by guarded atomic
// updates; business decisions go through the derived ledger numbers.
type Package struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	CustomerID        uint          `gorm:"not null;index" json:"customer_id"`
	TotalSessions     int           `gorm:"not null" json:"total_sessions"`
	RemainingSessions int           `gorm:"not null" json:"remaining_sessions"`
	SessionType       SessionType   `gorm:"type:varchar(20);not null" json:"session_type"`
	ValidFrom         time.Time     `gorm:"not null" json:"valid_from"`
	ValidTo           time.Time     `gorm:"not null" json:"valid_to"`
	Price             float64       `gorm:"not null" json:"price"`
	Status            PackageStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// CoversTime reports whether t falls inside the package validity window.
func (p *Package) CoversTime(t time.Time) bool {
	return !t.Before(p.ValidFrom) && t.Before(p.ValidTo)
}
