package remote

import (
	"context"
	"fmt"
	"net/http"
	"parking_app/internal/domain"
	"parking_app/internal/repository"
)

type remoteUserRepository struct {
	client *Client
}

func NewUserRepository(client *Client) repository.UserRepository {
	return &remoteUserRepository{client: client}
}

func (r *remoteUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := r.client.doJSON(ctx, http.MethodGet, collectionPath(repository.CollectionUsers), nil, &users); err != nil {
		return nil, fmt.Errorf("UserRepository.FindAll: %w", err)
	}
	return users, nil
}
