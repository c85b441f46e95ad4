package jsonfile

import (
	"errors"
	"os"
)

// SeedJSON is a small development database. The parking records use both key
// spellings seen in the wild so the client normalization gets exercised.
const SeedJSON = `{
  "users": [
    {
      "id": "1",
      "email": "jane@example.com",
      "password": "secret123",
      "firstName": "Jane",
      "lastName": "Doe",
      "role": "driver",
      "avatarUrl": "https://i.pravatar.cc/150?u=jane",
      "location": "Downtown"
    }
  ],
  "parking": [
    {
      "id": "1",
      "name": "Central City Parking",
      "address": "123 Main St",
      "distance": "0.4 km",
      "price": "$2.50/hr",
      "availableSpaces": 42,
      "image": "https://images.example.com/central.jpg",
      "rating": 4.6,
      "features": ["Security", "EV Charging"],
      "open24Hours": true,
      "keywords": ["downtown", "central", "main street"]
    },
    {
      "id": "2",
      "name": "Harbor View Parking",
      "address": "9 Pier Rd",
      "distance": "1.2 km",
      "Price": 3,
      "available": 8,
      "parkingImage": "https://images.example.com/harbor.jpg"
    }
  ],
  "bookings": [
    {
      "id": "1",
      "parkingName": "Harbor View Parking",
      "address": "9 Pier Rd",
      "date": "2025-01-10",
      "startTime": "2025-01-10T09:00:00.000Z",
      "endTime": "2025-01-10T11:30:00.000Z",
      "price": "$12.50",
      "status": "completed"
    }
  ]
}`

// OpenOrSeed opens path, writing SeedJSON first when the file does not exist.
func OpenOrSeed(path string) (*Store, error) {
	if path == "" {
		return NewFromJSON([]byte(SeedJSON))
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		s, err := NewFromJSON([]byte(SeedJSON))
		if err != nil {
			return nil, err
		}
		s.path = path
		s.mu.Lock()
		defer s.mu.Unlock()
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
		return s, nil
	}
	return Open(path)
}
