package models

import "time"

// Provider represents a caregiver offering services on the platform.
type Provider struct {
	ID           string  `bson:"id" json:"id"`
	Email        string  `bson:"email" json:"email"`
	PasswordHash string  `bson:"password_hash" json:"-"`
	Name         string  `bson:"name" json:"name"`
	Bio          string  `bson:"bio,omitempty" json:"bio,omitempty"`
	ServiceType  string  `bson:"service_type" json:"serviceType"` // e.g. "elder_care", "child_care", "nursing"
	HourlyRate   float64 `bson:"hourly_rate" json:"hourlyRate"`
	Currency     string  `bson:"currency,omitempty" json:"currency,omitempty"`

	// SlotGranularityMin is the fixed length in minutes of a single template
	// slot. Defaults to 30 when unset.
	SlotGranularityMin int `bson:"slot_granularity_min,omitempty" json:"slotGranularityMin,omitempty"`

	// WeeklyTemplate is the caregiver's recurring availability pattern.
	WeeklyTemplate WeeklyTemplate `bson:"weekly_template,omitempty" json:"weeklyTemplate,omitempty"`

	FCMToken  string    `bson:"fcm_token,omitempty" json:"-"`
	Status    string    `bson:"status" json:"status"` // "pending", "active", "suspended"
	Rating    float64   `bson:"rating,omitempty" json:"rating,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// DefaultSlotGranularityMin is used when a provider has not configured one.
const DefaultSlotGranularityMin = 30

// SlotGranularity returns the provider's slot length in minutes.
func (p Provider) SlotGranularity() int {
	if p.SlotGranularityMin > 0 {
		return p.SlotGranularityMin
	}
	return DefaultSlotGranularityMin
}
