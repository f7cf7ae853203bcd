package agents

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrAgentNotFound is returned when no agent matches the id
var ErrAgentNotFound = errors.New("agent not found")

type Service interface {
	CreateAgent(ctx context.Context, req CreateAgentRequest) (*Agent, error)
	GetAgent(ctx context.Context, id uuid.UUID) (*Agent, error)
	GetAgentSummary(ctx context.Context, id uuid.UUID) (*AgentSummary, error)
	ListAgents(ctx context.Context, activeOnly bool) ([]Agent, error)
	UpdateAgent(ctx context.Context, id uuid.UUID, req UpdateAgentRequest) (*Agent, error)
	DeleteAgent(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateAgent(ctx context.Context, req CreateAgentRequest) (*Agent, error) {
	agent := &Agent{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		CommissionRate: req.CommissionRate,
		Active:         true,
	}

	if err := s.repo.Create(ctx, agent); err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}
	return agent, nil
}

func (s *service) GetAgent(ctx context.Context, id uuid.UUID) (*Agent, error) {
	agent, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get agent: %w", err)
	}
	if agent == nil {
		return nil, ErrAgentNotFound
	}
	return agent, nil
}

func (s *service) GetAgentSummary(ctx context.Context, id uuid.UUID) (*AgentSummary, error) {
	agent, err := s.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}

	summary, err := s.repo.GetSummary(ctx, agent)
	if err != nil {
		return nil, fmt.Errorf("agent summary: %w", err)
	}
	return summary, nil
}

func (s *service) ListAgents(ctx context.Context, activeOnly bool) ([]Agent, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *service) UpdateAgent(ctx context.Context, id uuid.UUID, req UpdateAgentRequest) (*Agent, error) {
	agent, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get agent: %w", err)
	}
	if agent == nil {
		return nil, ErrAgentNotFound
	}

	if req.Name != nil {
		agent.Name = *req.Name
	}
	if req.Email != nil {
		agent.Email = *req.Email
	}
	if req.Phone != nil {
		agent.Phone = *req.Phone
	}
	if req.CommissionRate != nil {
		agent.CommissionRate = *req.CommissionRate
	}
	if req.Active != nil {
		agent.Active = *req.Active
	}

	if err := s.repo.Update(ctx, agent); err != nil {
		return nil, fmt.Errorf("update agent: %w", err)
	}
	return agent, nil
}

func (s *service) DeleteAgent(ctx context.Context, id uuid.UUID) error {
	agent, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get agent: %w", err)
	}
	if agent == nil {
		return ErrAgentNotFound
	}
	return s.repo.Delete(ctx, id)
}
