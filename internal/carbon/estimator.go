// Package carbon estimates the CO2 footprint of charging activity.
package carbon

import (
	"chargepulse/internal/models"
)

// Physical and grid constants behind the factor.
const (
	batteryCapacityWh   = 14.8
	chargingEfficiency  = 0.85
	gridCarbonIntensity = 663.0 // gCO2 per kWh
)

// Factor is grams of CO2 emitted per percentage point of charge gained:
// energy drawn from the wall for a full charge, priced at grid intensity,
// split across 100 points.
const Factor = batteryCapacityWh / chargingEfficiency / 1000 * gridCarbonIntensity / 100

// Summary totals CO2 across a session population. Only sessions that gained
// charge contribute; zero or negative gains neither credit nor debit.
type Summary struct {
	TotalCO2Grams     float64 `json:"total_co2_grams"`
	TotalCO2Kg        float64 `json:"total_co2_kg"`
	ChargingSessions  int     `json:"charging_sessions"`
	TotalChargeGained int     `json:"total_charge_gained"`
}

// Equivalents express a CO2 total as everyday activities.
type Equivalents struct {
	DrivingKm      float64 `json:"driving_km"`
	TreesToOffset  float64 `json:"trees_to_offset"`
	LEDBulbHours   float64 `json:"led_bulb_hours"`
	StreamingHours float64 `json:"streaming_hours"`
}

// Per-kg equivalence multipliers.
const (
	drivingKmPerKg      = 4.8
	treeKgPerYear       = 21.77
	ledBulbHoursPerKg   = 105.0
	streamingHoursPerKg = 27.8
)

// SessionCO2Grams converts one session's charge gain to grams of CO2.
// Non-positive gains return 0.
func SessionCO2Grams(chargeGained int) float64 {
	if chargeGained <= 0 {
		return 0
	}
	return float64(chargeGained) * Factor
}

// Estimate totals CO2 over sessions with positive charge gain.
func Estimate(sessions []models.Session) Summary {
	var sum Summary
	for _, s := range sessions {
		if s.ChargeGained == nil || *s.ChargeGained <= 0 {
			continue
		}
		sum.ChargingSessions++
		sum.TotalChargeGained += *s.ChargeGained
		sum.TotalCO2Grams += SessionCO2Grams(*s.ChargeGained)
	}
	sum.TotalCO2Kg = sum.TotalCO2Grams / 1000
	return sum
}

// ToEquivalents converts a CO2 total in kilograms into comparison figures.
func ToEquivalents(co2Kg float64) Equivalents {
	return Equivalents{
		DrivingKm:      co2Kg * drivingKmPerKg,
		TreesToOffset:  co2Kg / treeKgPerYear,
		LEDBulbHours:   co2Kg * ledBulbHoursPerKg,
		StreamingHours: co2Kg * streamingHoursPerKg,
	}
}

// ProjectedAnnualKg linearly extrapolates the per-device-day average to a
// year across the fleet. This is an extrapolation assuming the current
// average holds, not a forecast with uncertainty bounds. Returns nil when
// deviceDays or deviceCount is non-positive (undefined, not zero).
func ProjectedAnnualKg(totalCO2Kg, deviceDays float64, deviceCount int) *float64 {
	if deviceDays <= 0 || deviceCount <= 0 {
		return nil
	}
	projected := totalCO2Kg / deviceDays * 365 * float64(deviceCount)
	return &projected
}
