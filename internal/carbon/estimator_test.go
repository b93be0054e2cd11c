package carbon

import (
	"math"
	"testing"
	"time"

	"chargepulse/internal/models"
)

func session(chargeGained int) models.Session {
	connect := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	disconnect := connect.Add(time.Hour)
	minutes := 60.0
	end := 50 + chargeGained
	return models.Session{
		UserID:          "user-1",
		ConnectTime:     connect,
		DisconnectTime:  &disconnect,
		DurationMinutes: &minutes,
		StartPercentage: 50,
		EndPercentage:   &end,
		ChargeGained:    &chargeGained,
		IsComplete:      true,
	}
}

func TestFactorValue(t *testing.T) {
	// 14.8 Wh at 85% efficiency, 663 gCO2/kWh, per percentage point.
	if math.Abs(Factor-0.1155) > 0.0005 {
		t.Fatalf("carbon factor = %v, want ~0.1155", Factor)
	}
}

func TestSessionCO2Grams(t *testing.T) {
	got := SessionCO2Grams(60)
	if math.Abs(got-6.93) > 0.01 {
		t.Fatalf("60%% gain = %vg, want ~6.93g", got)
	}
	if SessionCO2Grams(0) != 0 {
		t.Fatalf("zero gain must contribute nothing")
	}
	if SessionCO2Grams(-20) != 0 {
		t.Fatalf("negative gain must contribute nothing")
	}
}

func TestEstimateOnlyPositiveGains(t *testing.T) {
	sessions := []models.Session{
		session(60),
		session(0),
		session(-15),
		session(40),
	}

	sum := Estimate(sessions)
	if sum.ChargingSessions != 2 {
		t.Fatalf("expected 2 contributing sessions, got %d", sum.ChargingSessions)
	}
	if sum.TotalChargeGained != 100 {
		t.Fatalf("expected 100%% total gain, got %d", sum.TotalChargeGained)
	}
	if sum.TotalCO2Grams < 0 {
		t.Fatalf("total CO2 must be non-negative")
	}
	want := SessionCO2Grams(60) + SessionCO2Grams(40)
	if math.Abs(sum.TotalCO2Grams-want) > 1e-9 {
		t.Fatalf("total = %v, want %v", sum.TotalCO2Grams, want)
	}
	if math.Abs(sum.TotalCO2Kg-sum.TotalCO2Grams/1000) > 1e-12 {
		t.Fatalf("kg/g mismatch: %v vs %v", sum.TotalCO2Kg, sum.TotalCO2Grams)
	}
}

func TestEstimateEmpty(t *testing.T) {
	sum := Estimate(nil)
	if sum.TotalCO2Grams != 0 || sum.ChargingSessions != 0 {
		t.Fatalf("empty input must total zero, got %+v", sum)
	}
}

func TestToEquivalents(t *testing.T) {
	eq := ToEquivalents(10)
	if math.Abs(eq.DrivingKm-48) > 1e-9 {
		t.Fatalf("driving km = %v, want 48", eq.DrivingKm)
	}
	if math.Abs(eq.TreesToOffset-10/21.77) > 1e-9 {
		t.Fatalf("trees = %v, want %v", eq.TreesToOffset, 10/21.77)
	}
	if math.Abs(eq.LEDBulbHours-1050) > 1e-9 {
		t.Fatalf("led hours = %v, want 1050", eq.LEDBulbHours)
	}
	if math.Abs(eq.StreamingHours-278) > 1e-9 {
		t.Fatalf("streaming hours = %v, want 278", eq.StreamingHours)
	}
}

func TestProjectedAnnualKg(t *testing.T) {
	got := ProjectedAnnualKg(10, 100, 2)
	if got == nil {
		t.Fatalf("expected projection")
	}
	if math.Abs(*got-73) > 1e-9 {
		t.Fatalf("projection = %v, want 73", *got)
	}

	if ProjectedAnnualKg(10, 0, 2) != nil {
		t.Fatalf("zero device-days must be undefined, not infinite")
	}
	if ProjectedAnnualKg(10, 100, 0) != nil {
		t.Fatalf("zero devices must be undefined")
	}
}
