package entity

import "time"

// LeadChange entrada del historial de cambios de un lead (solo se agrega).
type LeadChange struct {
	ID        string
	LeadID    string
	Field     string
	Before    string
	After     string
	CreatedAt time.Time
}
