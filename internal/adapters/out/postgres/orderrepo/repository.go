package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"kds/internal/core/domain/model/order"
	"kds/internal/core/ports"
	"kds/internal/pkg/errs"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker changeTracker
	logger  *zap.Logger
}

// changeTracker collects the changes made through the repository so the unit of
// work can announce them after commit.
type changeTracker interface {
	Track(event order.ChangedEvent)
}

// NoopTracker discards changes. It is used by read-only callers that work outside
// a unit of work.
type NoopTracker struct{}

func (NoopTracker) Track(order.ChangedEvent) {}

// NewGormOrderRepository creates a new GORM order repository.
// A nil tracker discards changes and a nil logger is replaced by zap.NewNop().
func NewGormOrderRepository(db *gorm.DB, tracker changeTracker, logger *zap.Logger) *GormOrderRepository {
	if tracker == nil {
		tracker = NoopTracker{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
		logger:  logger,
	}
}

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// Add inserts a new order and returns the id assigned by the BIGSERIAL column.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) (order.ID, error) {
	if err := aggregate.Validate(); err != nil {
		return 0, err
	}
	if aggregate.ID() != 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("order %s is already saved", aggregate.ID()))
	}
	if aggregate.Status() != order.New {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("new orders must be %s, got %s", order.New, aggregate.Status()),
		)
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return 0, errs.NewStorageError("add order", err)
	}

	saved, err := toDomain(dto)
	if err != nil {
		return 0, err
	}

	r.tracker.Track(order.NewCreatedEvent(saved))
	return saved.ID(), nil
}

// Get retrieves an order by id.
func (r *GormOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", int64(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, errs.NewStorageError("get order", err)
	}

	return toDomain(dto)
}

// Scan lists orders in display order: status rank, then created_at, then id.
func (r *GormOrderRepository) Scan(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	query := r.db.WithContext(ctx).Order("created_at, id")
	if filter == ports.ActiveOrders {
		query = query.Where("status IN ?", statusLabels(order.ActiveStatuses()))
	}

	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, errs.NewStorageError("scan orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return order.CompareForDisplay(orders[i], orders[j]) < 0
	})
	return orders, nil
}

// UpdateStatus writes the aggregate's status and updated_at if the stored status
// still equals expected.
func (r *GormOrderRepository) UpdateStatus(
	ctx context.Context,
	aggregate *order.Order,
	expected order.Status,
) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", int64(aggregate.ID()), expected.String()).
		Updates(map[string]any{
			"status":     aggregate.Status().String(),
			"updated_at": aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return false, errs.NewStorageError("update order status", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	r.tracker.Track(order.NewStatusChangedEvent(aggregate, expected))
	return true, nil
}

// CountByStatus counts orders per status, restricted to statuses.
func (r *GormOrderRepository) CountByStatus(
	ctx context.Context,
	statuses []order.Status,
) (map[order.Status]int, error) {
	counts := make(map[order.Status]int, len(statuses))
	if len(statuses) == 0 {
		return counts, nil
	}

	var rows []struct {
		Status string
		Total  int
	}
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("status, COUNT(*) AS total").
		Where("status IN ?", statusLabels(statuses)).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, errs.NewStorageError("count orders by status", err)
	}

	for _, row := range rows {
		status, parseErr := order.ParseStatus(row.Status)
		if parseErr != nil {
			return nil, parseErr
		}
		counts[status] = row.Total
	}
	return counts, nil
}

// DeleteOlderThan removes orders in statuses whose updated_at <= threshold.
func (r *GormOrderRepository) DeleteOlderThan(
	ctx context.Context,
	threshold time.Time,
	statuses []order.Status,
	sweptAt time.Time,
) (int64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Where("status IN ? AND updated_at <= ?", statusLabels(statuses), threshold.UTC()).
		Delete(&OrderDTO{})
	if result.Error != nil {
		return 0, errs.NewStorageError("delete old orders", result.Error)
	}

	if result.RowsAffected > 0 {
		r.tracker.Track(order.NewSweptEvent(result.RowsAffected, sweptAt))
	}
	return result.RowsAffected, nil
}

// Delete removes one order. The deleted row is returned by Postgres so the change
// can be reported with its last status.
func (r *GormOrderRepository) Delete(ctx context.Context, id order.ID, deletedAt time.Time) (bool, error) {
	var deleted []OrderDTO
	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", int64(id)).
		Delete(&deleted)
	if result.Error != nil {
		return false, errs.NewStorageError("delete order", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	for _, dto := range deleted {
		o, err := toDomain(dto)
		if err != nil {
			r.logger.Warn("cannot report deleted order",
				zap.Int64("order_id", dto.ID),
				zap.Error(err),
			)
			continue
		}
		r.tracker.Track(order.NewDeletedEvent(o, deletedAt))
	}
	return true, nil
}
