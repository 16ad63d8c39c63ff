package service

import (
	"context"
	"fmt"

	"rhea-commerce/internal/model"
	"rhea-commerce/internal/repository"

	"github.com/rs/zerolog"
)

// adminService implements AdminService.
type adminService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	logger      zerolog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository, logger zerolog.Logger) AdminService {
	return &adminService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		logger:      logger.With().Str("service", "admin").Logger(),
	}
}

// Stats returns storefront totals for the admin dashboard. Revenue counts
// paid orders only.
func (s *adminService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	orders, revenue, err := s.orderRepo.Stats(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get order stats")
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	products, err := s.productRepo.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count products")
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	users, err := s.userRepo.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count users")
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return &model.DashboardStats{
		Products: products,
		Orders:   orders,
		Users:    users,
		Revenue:  revenue,
	}, nil
}
