package recon

import (
	"reflect"
	"testing"
	"time"

	"chargepulse/internal/models"
)

func event(id int64, typ models.EventType, pct int, ts time.Time) models.ChargingEvent {
	return models.ChargingEvent{
		ID:         id,
		UserID:     "user-1",
		Type:       typ,
		Percentage: pct,
		Timestamp:  ts,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 10, hour, minute, 0, 0, time.UTC)
}

func TestReconstructSimpleCompleteSession(t *testing.T) {
	events := []models.ChargingEvent{
		event(1, models.EventConnected, 20, at(10, 0)),
		event(2, models.EventDisconnected, 80, at(11, 30)),
	}

	sessions := Reconstruct(events)
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}

	s := sessions[0]
	if !s.IsComplete {
		t.Fatalf("expected complete session")
	}
	if s.DurationMinutes == nil || *s.DurationMinutes != 90 {
		t.Fatalf("expected duration 90, got %v", s.DurationMinutes)
	}
	if s.StartPercentage != 20 {
		t.Fatalf("expected start 20, got %d", s.StartPercentage)
	}
	if s.EndPercentage == nil || *s.EndPercentage != 80 {
		t.Fatalf("expected end 80, got %v", s.EndPercentage)
	}
	if s.ChargeGained == nil || *s.ChargeGained != 60 {
		t.Fatalf("expected charge gained 60, got %v", s.ChargeGained)
	}
}

func TestReconstructOrphanDisconnect(t *testing.T) {
	events := []models.ChargingEvent{
		event(1, models.EventDisconnected, 50, at(9, 0)),
	}

	sessions := Reconstruct(events)
	if len(sessions) != 0 {
		t.Fatalf("expected 0 sessions for orphan disconnect, got %d", len(sessions))
	}
}

func TestReconstructBackToBackConnects(t *testing.T) {
	events := []models.ChargingEvent{
		event(1, models.EventConnected, 10, at(8, 0)),
		event(2, models.EventConnected, 12, at(8, 5)),
	}

	sessions := Reconstruct(events)
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	for i, s := range sessions {
		if s.IsComplete {
			t.Fatalf("session %d: expected incomplete", i)
		}
		if s.DisconnectTime != nil {
			t.Fatalf("session %d: expected nil disconnect time", i)
		}
	}
	if sessions[0].StartPercentage != 10 || sessions[1].StartPercentage != 12 {
		t.Fatalf("unexpected start percentages: %d, %d", sessions[0].StartPercentage, sessions[1].StartPercentage)
	}
}

func TestReconstructTrailingConnect(t *testing.T) {
	events := []models.ChargingEvent{
		event(1, models.EventConnected, 30, at(7, 0)),
		event(2, models.EventDisconnected, 55, at(8, 0)),
		event(3, models.EventConnected, 40, at(22, 0)),
	}

	sessions := Reconstruct(events)
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if !sessions[0].IsComplete {
		t.Fatalf("first session should be complete")
	}
	if sessions[1].IsComplete {
		t.Fatalf("trailing session should be incomplete")
	}
}

func TestReconstructNegativeChargeGained(t *testing.T) {
	events := []models.ChargingEvent{
		event(1, models.EventConnected, 60, at(12, 0)),
		event(2, models.EventDisconnected, 45, at(13, 0)),
	}

	sessions := Reconstruct(events)
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].ChargeGained == nil || *sessions[0].ChargeGained != -15 {
		t.Fatalf("expected charge gained -15, got %v", sessions[0].ChargeGained)
	}
}

func TestReconstructSessionCountEqualsConnectCount(t *testing.T) {
	events := []models.ChargingEvent{
		event(1, models.EventDisconnected, 90, at(6, 0)),
		event(2, models.EventConnected, 10, at(7, 0)),
		event(3, models.EventConnected, 15, at(8, 0)),
		event(4, models.EventDisconnected, 70, at(9, 0)),
		event(5, models.EventDisconnected, 65, at(10, 0)),
		event(6, models.EventConnected, 20, at(11, 0)),
	}

	connects := 0
	for _, ev := range events {
		if ev.Type == models.EventConnected {
			connects++
		}
	}

	sessions := Reconstruct(events)
	if len(sessions) != connects {
		t.Fatalf("expected %d sessions (one per connect), got %d", connects, len(sessions))
	}
}

func TestReconstructSortsUnorderedInput(t *testing.T) {
	ordered := []models.ChargingEvent{
		event(1, models.EventConnected, 20, at(10, 0)),
		event(2, models.EventDisconnected, 80, at(11, 30)),
	}
	shuffled := []models.ChargingEvent{ordered[1], ordered[0]}

	if !reflect.DeepEqual(Reconstruct(ordered), Reconstruct(shuffled)) {
		t.Fatalf("reconstruction should not depend on input order")
	}
}

func TestReconstructTieBreakOnRowID(t *testing.T) {
	ts := at(9, 0)
	events := []models.ChargingEvent{
		{ID: 2, UserID: "user-1", Type: models.EventDisconnected, Percentage: 80, Timestamp: ts},
		{ID: 1, UserID: "user-1", Type: models.EventConnected, Percentage: 20, Timestamp: ts},
	}

	sessions := Reconstruct(events)
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if !sessions[0].IsComplete {
		t.Fatalf("row-id tie-break should pair connect before disconnect")
	}
	if *sessions[0].DurationMinutes != 0 {
		t.Fatalf("expected zero duration, got %v", *sessions[0].DurationMinutes)
	}
}

func TestReconstructIdempotent(t *testing.T) {
	events := []models.ChargingEvent{
		event(1, models.EventConnected, 10, at(8, 0)),
		event(2, models.EventDisconnected, 50, at(9, 0)),
		event(3, models.EventConnected, 45, at(20, 0)),
		event(4, models.EventConnected, 48, at(21, 0)),
	}

	first := Reconstruct(events)
	second := Reconstruct(events)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated reconstruction must be identical")
	}
}

func TestReconstructEmptyInput(t *testing.T) {
	if sessions := Reconstruct(nil); len(sessions) != 0 {
		t.Fatalf("expected no sessions for empty input, got %d", len(sessions))
	}
}
