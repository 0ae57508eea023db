package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/appointease/internal/domain/booking"
	"github.com/BruksfildServices01/appointease/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func (r *BookingGormRepository) List(ctx context.Context) ([]models.Booking, error) {
	list := []models.Booking{}
	if err := r.db.WithContext(ctx).
		Order("seq ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BookingGormRepository) Append(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// AppendIfSlotFree serializa escritas na mesma data + horário com um
// advisory lock da transação.
func (r *BookingGormRepository) AppendIfSlotFree(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(?))",
			b.Date+" "+b.TimeSlot,
		).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Booking{}).
			Where("date = ? AND time_slot = ?", b.Date, b.TimeSlot).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrSlotConflict
		}

		return tx.Create(b).Error
	})
}

func (r *BookingGormRepository) Delete(
	ctx context.Context,
	id string,
) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Booking{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

var _ domain.Repository = (*BookingGormRepository)(nil)
