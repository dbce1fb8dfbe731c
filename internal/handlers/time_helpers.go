package handlers

import (
	"time"

	"github.com/studiobelle/salon-scheduler/internal/models"
	"github.com/studiobelle/salon-scheduler/internal/timezone"
)

// --------------------------------------------------
// Timezone centralizado por salão
// --------------------------------------------------

// resolve o fuso oficial do salão
func locationFromSalon(salon *models.Salon) *time.Location {
	if salon != nil {
		return timezone.Location(salon.Timezone)
	}
	return timezone.Location("")
}

func parseDateInSalon(salon *models.Salon, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromSalon(salon),
	)
}
