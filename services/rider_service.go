package services

import (
	"context"
	"errors"

	"github.com/halftime-club/paddock-predict/models"
	"github.com/halftime-club/paddock-predict/repositories"
)

type RiderService interface {
	GetByID(ctx context.Context, id int) (*models.Rider, error)
	// List возвращает гонщиков; activeOnly скрывает выбывших из сезона.
	List(ctx context.Context, activeOnly bool) ([]models.Rider, error)
}

type riderService struct {
	riderRepo repositories.RiderRepository
}

func NewRiderService(riderRepo repositories.RiderRepository) RiderService {
	return &riderService{riderRepo: riderRepo}
}

func (s *riderService) GetByID(ctx context.Context, id int) (*models.Rider, error) {
	rider, err := s.riderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRiderNotFound) {
			return nil, ErrRiderNotFound
		}
		return nil, err
	}
	return rider, nil
}

func (s *riderService) List(ctx context.Context, activeOnly bool) ([]models.Rider, error) {
	return s.riderRepo.List(ctx, activeOnly)
}
