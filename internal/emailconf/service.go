package emailconf

import (
	"context"
)

// Service is the tenant email config surface: admin CRUD plus the
// ListEnabled view the ingestion scheduler enumerates tenants from.
type Service interface {
	Create(ctx context.Context, cfg *TenantEmailConfig) (*TenantEmailConfig, error)
	Get(ctx context.Context, namespace, municipalityID string) (*TenantEmailConfig, error)
	List(ctx context.Context) ([]TenantEmailConfig, error)
	ListEnabled(ctx context.Context) ([]TenantEmailConfig, error)
	Update(ctx context.Context, cfg *TenantEmailConfig) (*TenantEmailConfig, error)
	Delete(ctx context.Context, namespace, municipalityID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, cfg *TenantEmailConfig) (*TenantEmailConfig, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (s *service) Get(ctx context.Context, namespace, municipalityID string) (*TenantEmailConfig, error) {
	return s.repo.Get(ctx, namespace, municipalityID)
}

func (s *service) List(ctx context.Context) ([]TenantEmailConfig, error) {
	return s.repo.List(ctx)
}

func (s *service) ListEnabled(ctx context.Context) ([]TenantEmailConfig, error) {
	return s.repo.ListEnabled(ctx)
}

func (s *service) Update(ctx context.Context, cfg *TenantEmailConfig) (*TenantEmailConfig, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (s *service) Delete(ctx context.Context, namespace, municipalityID string) error {
	return s.repo.Delete(ctx, namespace, municipalityID)
}
