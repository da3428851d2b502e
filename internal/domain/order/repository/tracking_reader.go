package repository

import (
	"context"
	"database/sql"
	"errors"

	"parcel_tracking/internal/domain/order/model"

	"github.com/jmoiron/sqlx"
)

// ErrTrackingNotFound 运单号不存在
var ErrTrackingNotFound = errors.New("tracking number not found")

// TrackingReader 公开查询的只读通道，绕过 ORM 直接查询
type TrackingReader interface {
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*model.TrackingView, error)
}

// trackingReader sqlx 实现
type trackingReader struct {
	db *sqlx.DB
}

// NewTrackingReader 创建只读查询器
func NewTrackingReader(db *sqlx.DB) TrackingReader {
	return &trackingReader{db: db}
}

const trackingQuery = `
SELECT tracking_number, status, updated_at
FROM orders
WHERE tracking_number = $1 AND deleted_at IS NULL`

// FindByTrackingNumber 按运单号查询客户可见视图
func (r *trackingReader) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*model.TrackingView, error) {
	var view model.TrackingView
	if err := r.db.GetContext(ctx, &view, trackingQuery, trackingNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrackingNotFound
		}
		return nil, err
	}

	view.StatusLabel = model.GetStatusInfo(view.Status).Label
	return &view, nil
}
