package mapper

import (
	"reflect"
	"testing"

	"parking_app/internal/domain"
)

func TestNormalizeParkingFullRecord(t *testing.T) {
	spot := NormalizeParking(map[string]any{
		"id":              "1",
		"name":            "Central City Parking",
		"address":         "123 Main St",
		"distance":        "0.4 km",
		"price":           "$2.50/hr",
		"availableSpaces": float64(42),
		"image":           "https://img/central.jpg",
		"rating":          4.6,
		"features":        []any{"Security", "EV Charging"},
		"open24Hours":     true,
		"keywords":        []any{"downtown"},
	})

	if spot.ID != "1" || spot.Name != "Central City Parking" || spot.Address != "123 Main St" {
		t.Errorf("identity fields wrong: %+v", spot)
	}
	if !spot.Price.Equal(domain.USD(2.5)) || spot.PriceUnit != "hr" {
		t.Errorf("price = %+v %q, want $2.50/hr", spot.Price, spot.PriceUnit)
	}
	if spot.Available != 42 {
		t.Errorf("available = %d, want 42", spot.Available)
	}
	if spot.Rating != 4.6 || !spot.Open24Hours {
		t.Errorf("rating/open24Hours wrong: %+v", spot)
	}
	if !reflect.DeepEqual(spot.Features, []string{"Security", "EV Charging"}) {
		t.Errorf("features = %v", spot.Features)
	}
	if !reflect.DeepEqual(spot.Keywords, []string{"downtown"}) {
		t.Errorf("keywords = %v", spot.Keywords)
	}
}

func TestNormalizeParkingFallbacks(t *testing.T) {
	spot := NormalizeParking(map[string]any{
		"id":           float64(2),
		"name":         "Harbor View",
		"address":      "9 Pier Rd",
		"Price":        float64(3),
		"available":    float64(8),
		"parkingImage": "https://img/harbor.jpg",
	})

	if spot.ID != "2" {
		t.Errorf("numeric id = %q, want 2", spot.ID)
	}
	if !spot.Price.Equal(domain.USD(3)) || spot.PriceLabel() != "$3.00/hr" {
		t.Errorf("bare Price should be an hourly USD rate, got %s", spot.PriceLabel())
	}
	if spot.Available != 8 {
		t.Errorf("available = %d, want 8", spot.Available)
	}
	if spot.Image != "https://img/harbor.jpg" {
		t.Errorf("image = %q, want parkingImage fallback", spot.Image)
	}
	if spot.Rating != 4.0 {
		t.Errorf("rating = %v, want default 4.0", spot.Rating)
	}
	if !reflect.DeepEqual(spot.Features, []string{"Security"}) {
		t.Errorf("features = %v, want default", spot.Features)
	}
	if !reflect.DeepEqual(spot.Keywords, []string{"harbor view", "9 pier rd"}) {
		t.Errorf("keywords = %v, want derived from name and address", spot.Keywords)
	}
}

func TestFalsyValuesFallThrough(t *testing.T) {
	spot := NormalizeParking(map[string]any{
		"name":            "Lot",
		"availableSpaces": float64(0),
		"available":       float64(5),
		"image":           "",
		"features":        []any{},
		"rating":          float64(0),
	})
	if spot.Available != 5 {
		t.Errorf("zero availableSpaces should fall through to available, got %d", spot.Available)
	}
	if spot.Image != PlaceholderImage {
		t.Errorf("empty image should use placeholder, got %q", spot.Image)
	}
	if spot.Rating != 4.0 {
		t.Errorf("zero rating should use default, got %v", spot.Rating)
	}
	if !reflect.DeepEqual(spot.Features, []string{"Security"}) {
		t.Errorf("empty features should use default, got %v", spot.Features)
	}
}

func TestResolveFollowsTableOrder(t *testing.T) {
	policy := FieldPolicy{Field: "available", Sources: []string{"a", "b", "c"}, Default: -1}

	if v, ok := Resolve(map[string]any{"b": 2, "c": 3}, policy); !ok || v != 2 {
		t.Errorf("Resolve = %v %v, want 2 from b", v, ok)
	}
	if v, ok := Resolve(map[string]any{"a": nil, "c": 3}, policy); !ok || v != 3 {
		t.Errorf("Resolve = %v %v, want 3 from c", v, ok)
	}
	if v, ok := Resolve(map[string]any{}, policy); ok || v != -1 {
		t.Errorf("Resolve = %v %v, want default", v, ok)
	}
}

func TestNormalizeParkingList(t *testing.T) {
	spots, err := NormalizeParkingList([]byte(`[{"id":1,"name":"A","price":"$1.00/hr"},{"id":"b","name":"B"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(spots) != 2 {
		t.Fatalf("got %d spots, want 2", len(spots))
	}
	if spots[1].PriceLabel() != "$0.00/hr" {
		t.Errorf("missing price = %q, want $0.00/hr", spots[1].PriceLabel())
	}

	if _, err := NormalizeParkingList([]byte(`{"not":"a list"}`)); err == nil {
		t.Error("non-array body should fail")
	}
}
