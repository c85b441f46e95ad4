package mapper

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"parking_app/internal/domain"
)

const PlaceholderImage = "https://via.placeholder.com/120"

const (
	defaultRating   = 4.0
	defaultRateUnit = "hr"
)

// FieldPolicy resolves one ParkingSpot field: the first source key holding a
// non-empty value wins, otherwise Default applies. Empty means absent, null,
// "", 0, false or an empty list.
type FieldPolicy struct {
	Field   string
	Sources []string
	Default any
}

// ParkingPolicy is the one fallback table used for every /parking record.
// Different producers of the store use different key spellings.
var ParkingPolicy = []FieldPolicy{
	{Field: "id", Sources: []string{"id"}, Default: ""},
	{Field: "name", Sources: []string{"name"}, Default: ""},
	{Field: "address", Sources: []string{"address"}, Default: ""},
	{Field: "distance", Sources: []string{"distance"}, Default: ""},
	{Field: "price", Sources: []string{"price", "Price"}, Default: 0.0},
	{Field: "available", Sources: []string{"availableSpaces", "available", "availabeSpaces"}, Default: 0},
	{Field: "image", Sources: []string{"image", "parkingImage"}, Default: PlaceholderImage},
	{Field: "rating", Sources: []string{"rating"}, Default: defaultRating},
	{Field: "features", Sources: []string{"features"}, Default: []string{"Security"}},
	{Field: "open24Hours", Sources: []string{"open24Hours"}, Default: false},
	// nil default: derived from name and address after the other fields resolve.
	{Field: "keywords", Sources: []string{"keywords"}, Default: nil},
}

// Resolve returns the value chosen for policy from raw and whether it came
// from a source key (false means Default).
func Resolve(raw map[string]any, policy FieldPolicy) (any, bool) {
	for _, key := range policy.Sources {
		if v, ok := raw[key]; ok && !isEmpty(v) {
			return v, true
		}
	}
	return policy.Default, false
}

// NormalizeParking maps a raw /parking record onto the display shape.
func NormalizeParking(raw map[string]any) domain.ParkingSpot {
	var spot domain.ParkingSpot
	for _, policy := range ParkingPolicy {
		value, fromSource := Resolve(raw, policy)
		switch policy.Field {
		case "id":
			spot.ID = domain.ID(asString(value))
		case "name":
			spot.Name = asString(value)
		case "address":
			spot.Address = asString(value)
		case "distance":
			spot.Distance = asString(value)
		case "price":
			spot.Price, spot.PriceUnit = asPrice(value, fromSource)
		case "available":
			spot.Available = int(asFloat(value))
		case "image":
			spot.Image = asString(value)
		case "rating":
			spot.Rating = asFloat(value)
		case "features":
			spot.Features = asStrings(value)
		case "open24Hours":
			spot.Open24Hours = asBool(value)
		case "keywords":
			if fromSource {
				spot.Keywords = asStrings(value)
			} else {
				spot.Keywords = []string{strings.ToLower(spot.Name), strings.ToLower(spot.Address)}
			}
		}
	}
	return spot
}

// NormalizeParkingList decodes a /parking response body.
func NormalizeParkingList(body []byte) ([]domain.ParkingSpot, error) {
	var raws []map[string]any
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("mapper.NormalizeParkingList: %w", err)
	}
	spots := make([]domain.ParkingSpot, 0, len(raws))
	for _, raw := range raws {
		spots = append(spots, NormalizeParking(raw))
	}
	return spots, nil
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case float64:
		return t == 0 || math.IsNaN(t)
	case int:
		return t == 0
	case bool:
		return !t
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	}
	return false
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err == nil {
			return f
		}
	}
	return 0
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	}
	return false
}

func asStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := asString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// asPrice handles both producers: a pre-formatted string ("$2.50/hr") and a
// bare hourly number under "Price".
func asPrice(v any, fromSource bool) (domain.Money, string) {
	switch t := v.(type) {
	case string:
		m, unit, err := domain.ParseMoney(t)
		if err != nil {
			return domain.Money{}, ""
		}
		return m, unit
	case float64:
		return domain.USD(t), defaultRateUnit
	case int:
		return domain.USD(float64(t)), defaultRateUnit
	}
	if !fromSource {
		return domain.USD(0), defaultRateUnit
	}
	return domain.Money{}, ""
}
