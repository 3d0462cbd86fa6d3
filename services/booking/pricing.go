package booking

import "math"

// CalculateTotalPrice derives a booking's total cost from the caregiver's
// hourly rate and the appointment length, rounded to cents.
func CalculateTotalPrice(hourlyRate, durationHours float64) float64 {
	return math.Round(hourlyRate*durationHours*100) / 100
}
