package remote

import (
	"context"
	"fmt"
	"net/http"
	"parking_app/internal/domain"
	"parking_app/internal/mapper"
	"parking_app/internal/repository"
)

type remoteParkingRepository struct {
	client *Client
}

func NewParkingRepository(client *Client) repository.ParkingRepository {
	return &remoteParkingRepository{client: client}
}

func (r *remoteParkingRepository) FindAll(ctx context.Context) ([]domain.ParkingSpot, error) {
	data, err := r.client.Do(ctx, http.MethodGet, collectionPath(repository.CollectionParking), nil)
	if err != nil {
		return nil, fmt.Errorf("ParkingRepository.FindAll: %w", err)
	}
	spots, err := mapper.NormalizeParkingList(data)
	if err != nil {
		return nil, fmt.Errorf("ParkingRepository.FindAll: %w", err)
	}
	return spots, nil
}
