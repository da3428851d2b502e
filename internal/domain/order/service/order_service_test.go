package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"parcel_tracking/internal/domain/order/model"
	"parcel_tracking/internal/domain/order/policy"
	"parcel_tracking/internal/domain/order/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockOrderRepository 订单仓库 Mock
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(order *model.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateBatch(orders []*model.Order) error {
	args := m.Called(orders)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(id string) (*model.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByTrackingNumber(trackingNumber string) (*model.Order, error) {
	args := m.Called(trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetList(offset, limit int, search, status string) ([]model.Order, int64, error) {
	args := m.Called(offset, limit, search, status)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) UpdateFields(id string, fields map[string]interface{}) (int64, error) {
	args := m.Called(id, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Delete(order *model.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

// MockTrackingReader 公开查询 Mock
type MockTrackingReader struct {
	mock.Mock
}

func (m *MockTrackingReader) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*model.TrackingView, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TrackingView), args.Error(1)
}

func newTestService() (*MockOrderRepository, *MockTrackingReader, OrderService) {
	repo := new(MockOrderRepository)
	tracker := new(MockTrackingReader)
	return repo, tracker, NewOrderService(repo, tracker)
}

func TestCreate(t *testing.T) {
	t.Run("Super admin creates with full fields", func(t *testing.T) {
		repo, _, svc := newTestService()
		repo.On("Create", mock.AnythingOfType("*model.Order")).Return(nil)

		order, err := svc.Create("super_admin", "u1", model.RawOrder{
			TrackingNumber: "T1",
			ClientName:     "Somchai",
			Amount:         flex(500),
			Currency:       strPtr("THB"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "T1", order.TrackingNumber)
		assert.Equal(t, model.DefaultStatus, order.Status)
		assert.NotNil(t, order.Amount)
		assert.Equal(t, 500.0, *order.Amount)
		assert.Equal(t, "u1", order.CreatedByID)
		repo.AssertExpectations(t)
	})

	t.Run("Thai admin cannot smuggle amount in", func(t *testing.T) {
		repo, _, svc := newTestService()
		repo.On("Create", mock.AnythingOfType("*model.Order")).Return(nil)

		order, err := svc.Create("thai_admin", "u2", model.RawOrder{
			TrackingNumber: "T2",
			ClientName:     "A",
			Amount:         flex(999),
			Currency:       strPtr("THB"),
			IsPaid:         boolPtr(true),
			Status:         model.StatusCompleted,
		})

		assert.NoError(t, err)
		assert.Nil(t, order.Amount)
		assert.Nil(t, order.Currency)
		assert.False(t, order.IsPaid)
		// status 不在可创建字段内，裁剪后回退默认值
		assert.Equal(t, model.DefaultStatus, order.Status)
	})

	t.Run("Unknown role denied", func(t *testing.T) {
		_, _, svc := newTestService()

		_, err := svc.Create("stranger", "u3", model.RawOrder{
			TrackingNumber: "T3",
			ClientName:     "B",
		})

		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("Missing required fields rejected before persistence", func(t *testing.T) {
		repo, _, svc := newTestService()

		_, err := svc.Create("super_admin", "u1", model.RawOrder{})

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		fields := make([]string, 0, len(vErr.Fields))
		for _, fe := range vErr.Fields {
			fields = append(fields, fe.Field)
		}
		assert.Contains(t, fields, "tracking_number")
		assert.Contains(t, fields, "client_name")
		repo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("Invalid status and currency rejected", func(t *testing.T) {
		_, _, svc := newTestService()

		_, err := svc.Create("super_admin", "u1", model.RawOrder{
			TrackingNumber: "T4",
			ClientName:     "C",
			Status:         "TELEPORTED",
			Currency:       strPtr("USD"),
		})

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Len(t, vErr.Fields, 2)
	})

	t.Run("Negative amount rejected", func(t *testing.T) {
		_, _, svc := newTestService()

		_, err := svc.Create("super_admin", "u1", model.RawOrder{
			TrackingNumber: "T5",
			ClientName:     "D",
			Amount:         flex(-10),
		})

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, "amount", vErr.Fields[0].Field)
	})
}

func TestCreateBulk(t *testing.T) {
	t.Run("All valid items created in one batch", func(t *testing.T) {
		repo, _, svc := newTestService()
		repo.On("CreateBatch", mock.AnythingOfType("[]*model.Order")).Return(nil)

		created, itemErrs, err := svc.CreateBulk("lao_admin", "u1", []model.RawOrder{
			{TrackingNumber: "T1", ClientName: "A"},
			{TrackingNumber: "T2", ClientName: "B", Amount: flex(100), Currency: strPtr("LAK")},
		})

		assert.NoError(t, err)
		assert.Empty(t, itemErrs)
		assert.Len(t, created, 2)
		repo.AssertExpectations(t)
	})

	t.Run("One invalid item rejects the whole batch", func(t *testing.T) {
		repo, _, svc := newTestService()

		created, itemErrs, err := svc.CreateBulk("super_admin", "u1", []model.RawOrder{
			{TrackingNumber: "T1", ClientName: "A"},
			{TrackingNumber: "T2"},
			{TrackingNumber: "T3", ClientName: "C"},
		})

		assert.NoError(t, err)
		assert.Nil(t, created)
		assert.Len(t, itemErrs, 1)
		assert.Equal(t, 1, itemErrs[0].Index)
		assert.Equal(t, "T2", itemErrs[0].TrackingNumber)
		repo.AssertNotCalled(t, "CreateBatch", mock.Anything)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("Role without edit capability denied", func(t *testing.T) {
		_, _, svc := newTestService()
		_, err := svc.Update("", "ord-1", model.RawOrder{Status: model.StatusCompleted})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("Thai admin status change persists only permitted fields", func(t *testing.T) {
		repo, _, svc := newTestService()
		stored := &model.Order{TrackingNumber: "T1", ClientName: "A", Status: model.StatusInTransit}
		repo.On("UpdateFields", "ord-1", map[string]interface{}{
			"status": model.StatusInTransit,
		}).Return(int64(1), nil)
		repo.On("GetByID", "ord-1").Return(stored, nil)

		order, err := svc.Update("thai_admin", "ord-1", model.RawOrder{
			Status: model.StatusInTransit,
			IsPaid: boolPtr(true),
			Amount: flex(50),
		})

		assert.NoError(t, err)
		assert.Equal(t, model.StatusInTransit, order.Status)
		repo.AssertExpectations(t)
	})

	t.Run("Zero rows means not found", func(t *testing.T) {
		repo, _, svc := newTestService()
		repo.On("UpdateFields", "ghost", mock.Anything).Return(int64(0), nil)

		_, err := svc.Update("super_admin", "ghost", model.RawOrder{Status: model.StatusCompleted})
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("Empty effective payload skips the write", func(t *testing.T) {
		repo, _, svc := newTestService()
		stored := &model.Order{TrackingNumber: "T1", ClientName: "A"}
		repo.On("GetByID", "ord-1").Return(stored, nil)

		// thai_admin 提交的 is_paid 被裁剪，剩余负载为空
		order, err := svc.Update("thai_admin", "ord-1", model.RawOrder{IsPaid: boolPtr(true)})

		assert.NoError(t, err)
		assert.Equal(t, "T1", order.TrackingNumber)
		repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything)
	})
}

func TestBulkUpsert(t *testing.T) {
	t.Run("Invalid item reported while the rest proceed", func(t *testing.T) {
		repo, _, svc := newTestService()
		existing := &model.Order{TrackingNumber: "T1", ClientName: "A"}
		existing.ID = "ord-1"
		repo.On("GetByID", "ord-1").Return(existing, nil)
		repo.On("UpdateFields", "ord-1", mock.Anything).Return(int64(1), nil)
		repo.On("GetByTrackingNumber", "T3").Return(nil, gorm.ErrRecordNotFound)
		repo.On("Create", mock.AnythingOfType("*model.Order")).Return(nil)

		result, err := svc.BulkUpsert("super_admin", "u1", []model.RawOrder{
			{ID: "ord-1", Status: model.StatusAtLaoBranch},
			{}, // 既无 id 也无运单号
			{TrackingNumber: "T3", ClientName: "C"},
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Updated)
		assert.Equal(t, 1, result.Created)
		assert.Len(t, result.Errors, 1)
		assert.Equal(t, 1, result.Errors[0].Index)
		repo.AssertExpectations(t)
	})

	t.Run("Falls back from id to tracking number", func(t *testing.T) {
		repo, _, svc := newTestService()
		existing := &model.Order{TrackingNumber: "T9", ClientName: "Z"}
		existing.ID = "real-id"
		repo.On("GetByID", "stale-id").Return(nil, gorm.ErrRecordNotFound)
		repo.On("GetByTrackingNumber", "T9").Return(existing, nil)
		repo.On("UpdateFields", "real-id", mock.Anything).Return(int64(1), nil)

		result, err := svc.BulkUpsert("super_admin", "u1", []model.RawOrder{
			{ID: "stale-id", TrackingNumber: "T9", Status: model.StatusCompleted},
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Updated)
		assert.Empty(t, result.Errors)
	})

	t.Run("Role without edit capability denied outright", func(t *testing.T) {
		_, _, svc := newTestService()

		_, err := svc.BulkUpsert("stranger", "u1", []model.RawOrder{
			{TrackingNumber: "T10", ClientName: "N"},
		})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestDelete(t *testing.T) {
	t.Run("Only super admin may delete", func(t *testing.T) {
		_, _, svc := newTestService()
		assert.ErrorIs(t, svc.Delete("thai_admin", "ord-1"), ErrPermissionDenied)
		assert.ErrorIs(t, svc.Delete("lao_admin", "ord-1"), ErrPermissionDenied)
	})

	t.Run("Super admin soft deletes", func(t *testing.T) {
		repo, _, svc := newTestService()
		stored := &model.Order{TrackingNumber: "T1", ClientName: "A"}
		repo.On("GetByID", "ord-1").Return(stored, nil)
		repo.On("Delete", stored).Return(nil)

		assert.NoError(t, svc.Delete("super_admin", "ord-1"))
		repo.AssertExpectations(t)
	})

	t.Run("Missing order reported as not found", func(t *testing.T) {
		repo, _, svc := newTestService()
		repo.On("GetByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

		assert.ErrorIs(t, svc.Delete("super_admin", "ghost"), ErrOrderNotFound)
	})
}

func TestTrack(t *testing.T) {
	t.Run("Found returns customer view", func(t *testing.T) {
		_, tracker, svc := newTestService()
		view := &model.TrackingView{
			TrackingNumber: "T1",
			Status:         model.StatusInTransit,
			StatusLabel:    "In Transit",
			UpdatedAt:      time.Now(),
		}
		tracker.On("FindByTrackingNumber", mock.Anything, "T1").Return(view, nil)

		got, err := svc.Track(context.Background(), "T1")
		assert.NoError(t, err)
		assert.Equal(t, "In Transit", got.StatusLabel)
	})

	t.Run("Missing tracking number maps to not found", func(t *testing.T) {
		_, tracker, svc := newTestService()
		tracker.On("FindByTrackingNumber", mock.Anything, "nope").Return(nil, repository.ErrTrackingNotFound)

		_, err := svc.Track(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("Infrastructure errors pass through", func(t *testing.T) {
		_, tracker, svc := newTestService()
		dbErr := errors.New("connection refused")
		tracker.On("FindByTrackingNumber", mock.Anything, "T1").Return(nil, dbErr)

		_, err := svc.Track(context.Background(), "T1")
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestPermissions(t *testing.T) {
	_, _, svc := newTestService()

	rec := svc.Permissions("thai_admin")
	assert.NotContains(t, rec.VisibleColumns, policy.ColumnAmount)

	rec = svc.Permissions(map[string]interface{}{"name": "super_admin"})
	assert.True(t, rec.CanDelete)
}
