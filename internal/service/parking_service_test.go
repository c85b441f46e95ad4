package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"parking_app/internal/domain"
	"parking_app/internal/repository"

	"go.uber.org/zap"
)

var testSpots = []domain.ParkingSpot{
	{ID: "1", Name: "Central City Parking", Address: "123 Main St", Keywords: []string{"downtown"}},
	{ID: "2", Name: "Harbor View", Address: "9 Pier Rd", Keywords: []string{"waterfront"}},
	{ID: "3", Name: "Mall Garage", Address: "1 Central Ave"},
}

func TestFilterSpotsBlankIsIdentity(t *testing.T) {
	for _, q := range []string{"", "   "} {
		result := FilterSpots(testSpots, q)
		if len(result.Results) != len(testSpots) || result.NoResults {
			t.Errorf("query %q = %+v", q, result)
		}
	}
}

func TestFilterSpotsMatches(t *testing.T) {
	tests := map[string][]domain.ID{
		"central":  {"1", "3"},
		"PIER":     {"2"},
		"downtown": {"1"},
		"waterf":   {"2"},
		"harbor ":  {"2"},
		"main st":  {"1"},
		" st":      {"1"},
		" central": {"3"},
	}
	for q, want := range tests {
		result := FilterSpots(testSpots, q)
		if len(result.Results) != len(want) {
			t.Errorf("query %q matched %d spots, want %d", q, len(result.Results), len(want))
			continue
		}
		for i, id := range want {
			if result.Results[i].ID != id {
				t.Errorf("query %q result %d = %s, want %s", q, i, result.Results[i].ID, id)
			}
		}
		if result.BestMatch == nil || result.BestMatch.ID != want[0] {
			t.Errorf("query %q best match = %v", q, result.BestMatch)
		}
	}
}

func TestFilterSpotsKeepsSurroundingSpaces(t *testing.T) {
	result := FilterSpots(testSpots, " harbor ")
	if !result.NoResults || len(result.Results) != 0 {
		t.Errorf("padded query should match as typed, got %+v", result.Results)
	}
	if result.Query != " harbor " {
		t.Errorf("query = %q", result.Query)
	}
}

func TestFilterSpotsNoResults(t *testing.T) {
	result := FilterSpots(testSpots, "airport")
	if !result.NoResults || len(result.Results) != 0 || result.BestMatch != nil {
		t.Errorf("result = %+v", result)
	}
}

func TestListSpotsRefreshInvalidates(t *testing.T) {
	inv := &recordingInvalidator{}
	svc := NewParkingService(&fakeParkingRepo{spots: testSpots}, newFakeBookingRepo(), inv, zap.NewNop())

	spots, err := svc.ListSpots(context.Background(), true)
	if err != nil || len(spots) != 3 {
		t.Fatalf("ListSpots = %v, %v", spots, err)
	}
	if len(inv.keys) != 1 || inv.keys[0] != repository.CollectionParking {
		t.Errorf("invalidated %v", inv.keys)
	}

	failing := NewParkingService(&fakeParkingRepo{err: errors.New("offline")}, newFakeBookingRepo(), nil, zap.NewNop())
	if _, err := failing.ListSpots(context.Background(), false); err == nil {
		t.Error("expected error")
	}
}

func TestBookNowPostsActiveReservation(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := NewParkingService(&fakeParkingRepo{}, repo, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) }

	booking, err := svc.BookNow(context.Background(), "2")
	if err != nil {
		t.Fatal(err)
	}
	if booking.Status != domain.BookingActive {
		t.Errorf("status = %s", booking.Status)
	}
	q := repo.lastReserve
	if q == nil || q.ParkingID != "2" || q.Status != domain.BookingActive || q.StartTime != "2025-06-15T10:00:00.000Z" {
		t.Errorf("reservation = %+v", q)
	}

	if _, err := svc.BookNow(context.Background(), ""); !IsValidation(err) {
		t.Errorf("empty spot id = %v", err)
	}
}
