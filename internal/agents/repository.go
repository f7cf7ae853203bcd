package agents

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, agent *Agent) error
	GetByID(ctx context.Context, id uuid.UUID) (*Agent, error)
	List(ctx context.Context, activeOnly bool) ([]Agent, error)
	Update(ctx context.Context, agent *Agent) error
	Delete(ctx context.Context, id uuid.UUID) error

	// GetSummary aggregates the agent's coupons and credited bookings.
	GetSummary(ctx context.Context, agent *Agent) (*AgentSummary, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, agent *Agent) error {
	return r.db.WithContext(ctx).Create(agent).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Agent, error) {
	var agent Agent
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&agent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &agent, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]Agent, error) {
	var result []Agent
	query := r.db.WithContext(ctx).Model(&Agent{}).Order("created_at DESC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Find(&result).Error
	return result, err
}

func (r *repository) Update(ctx context.Context, agent *Agent) error {
	agent.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(agent).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Agent{}).Error
}

func (r *repository) GetSummary(ctx context.Context, agent *Agent) (*AgentSummary, error) {
	summary := &AgentSummary{Agent: agent, Coupons: []AgentCouponRow{}}

	err := r.db.WithContext(ctx).
		Table("coupons").
		Select("id, code, used_count, active").
		Where("agent_id = ?", agent.ID).
		Order("used_count DESC").
		Scan(&summary.Coupons).Error
	if err != nil {
		return nil, err
	}

	row := struct {
		Count int64
		Total int64
	}{}
	err = r.db.WithContext(ctx).
		Table("bookings").
		Select("COUNT(*) AS count, COALESCE(SUM(commission_amount), 0) AS total").
		Where("agent_id = ? AND status = ?", agent.ID, "CONFIRMED").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	summary.ConfirmedBookings = row.Count
	summary.CreditedTotal = row.Total
	return summary, nil
}
