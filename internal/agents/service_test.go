package agents

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepository is a function-field mock of Repository.
type mockRepository struct {
	createFn     func(ctx context.Context, agent *Agent) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*Agent, error)
	listFn       func(ctx context.Context, activeOnly bool) ([]Agent, error)
	updateFn     func(ctx context.Context, agent *Agent) error
	deleteFn     func(ctx context.Context, id uuid.UUID) error
	getSummaryFn func(ctx context.Context, agent *Agent) (*AgentSummary, error)
}

func (m *mockRepository) Create(ctx context.Context, agent *Agent) error {
	if m.createFn != nil {
		return m.createFn(ctx, agent)
	}
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Agent, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockRepository) List(ctx context.Context, activeOnly bool) ([]Agent, error) {
	if m.listFn != nil {
		return m.listFn(ctx, activeOnly)
	}
	return nil, nil
}

func (m *mockRepository) Update(ctx context.Context, agent *Agent) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, agent)
	}
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockRepository) GetSummary(ctx context.Context, agent *Agent) (*AgentSummary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(ctx, agent)
	}
	return &AgentSummary{Agent: agent, Coupons: []AgentCouponRow{}}, nil
}

func TestCommissionFor_RoundsToWholeRupees(t *testing.T) {
	tests := []struct {
		name  string
		rate  float64
		total int64
		want  int64
	}{
		{"exact percentage", 10, 30000, 3000},
		{"rounds half up", 5.5, 30598, 1683}, // 1682.89
		{"rounds down", 8, 33998, 2720},      // 2719.84
		{"zero rate", 0, 50000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent := &Agent{CommissionRate: tt.rate}
			assert.Equal(t, tt.want, agent.CommissionFor(tt.total))
		})
	}
}

func TestGetAgentSummary_NotFound(t *testing.T) {
	svc := NewService(&mockRepository{})

	_, err := svc.GetAgentSummary(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrAgentNotFound)
}

func TestGetAgentSummary_AggregatesCouponsAndCredits(t *testing.T) {
	agentID := uuid.New()
	agent := &Agent{ID: agentID, Name: "Sunrise Travels", CommissionRate: 8, Active: true}

	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*Agent, error) {
			require.Equal(t, agentID, id)
			return agent, nil
		},
		getSummaryFn: func(ctx context.Context, a *Agent) (*AgentSummary, error) {
			return &AgentSummary{
				Agent: a,
				Coupons: []AgentCouponRow{
					{ID: uuid.New(), Code: "SUNRISE15", UsedCount: 4, Active: true},
				},
				ConfirmedBookings: 4,
				CreditedTotal:     9600,
			}, nil
		},
	}

	summary, err := NewService(repo).GetAgentSummary(context.Background(), agentID)
	require.NoError(t, err)
	assert.Equal(t, "Sunrise Travels", summary.Agent.Name)
	assert.Len(t, summary.Coupons, 1)
	assert.Equal(t, int64(4), summary.ConfirmedBookings)
	assert.Equal(t, int64(9600), summary.CreditedTotal)
}

func TestUpdateAgent_PartialPatch(t *testing.T) {
	agentID := uuid.New()
	agent := &Agent{ID: agentID, Name: "Hilltop Holidays", Email: "hello@hilltop.in", CommissionRate: 5.5, Active: true}

	var saved *Agent
	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*Agent, error) {
			return agent, nil
		},
		updateFn: func(ctx context.Context, a *Agent) error {
			saved = a
			return nil
		},
	}

	newRate := 7.0
	inactive := false
	updated, err := NewService(repo).UpdateAgent(context.Background(), agentID, UpdateAgentRequest{
		CommissionRate: &newRate,
		Active:         &inactive,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, 7.0, updated.CommissionRate)
	assert.False(t, updated.Active)
	assert.Equal(t, "Hilltop Holidays", updated.Name, "unchanged fields keep their values")
}
