package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	bookingDomain "github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	FirstName       string    `gorm:"not null;size:200;index:idx_bookings_name"`
	LastName        string    `gorm:"not null;size:200;index:idx_bookings_name"`
	TotalPrice      int64     `gorm:"not null"`
	DepositPaid     bool      `gorm:"not null"`
	CheckIn         string    `gorm:"not null;size:10;index"`
	CheckOut        string    `gorm:"not null;size:10;index"`
	AdditionalNeeds string    `gorm:"size:1000"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id bookingDomain.BookingID) (*bookingDomain.Record, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", int64(id)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bookingDomain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	rec := toRecord(&model)
	return &rec, nil
}

// List returns the ids of the bookings matching filter, oldest first.
func (r *GormBookingRepository) List(ctx context.Context, filter bookingDomain.Filter) ([]bookingDomain.BookingID, error) {
	q := r.db.WithContext(ctx).Model(&BookingModel{})
	if filter.FirstName != "" {
		q = q.Where("first_name = ?", filter.FirstName)
	}
	if filter.LastName != "" {
		q = q.Where("last_name = ?", filter.LastName)
	}
	if filter.CheckIn != "" {
		q = q.Where("check_in >= ?", filter.CheckIn)
	}
	if filter.CheckOut != "" {
		q = q.Where("check_out >= ?", filter.CheckOut)
	}

	var raw []int64
	if err := q.Order("id ASC").Pluck("id", &raw).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	ids := make([]bookingDomain.BookingID, len(raw))
	for i, id := range raw {
		ids[i] = bookingDomain.BookingID(id)
	}
	return ids, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, record bookingDomain.Record) (bookingDomain.BookingID, error) {
	model := toBookingModel(record)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return 0, fmt.Errorf("failed to save booking: %w", err)
	}
	return bookingDomain.BookingID(model.ID), nil
}

// Update replaces an existing booking.
func (r *GormBookingRepository) Update(ctx context.Context, id bookingDomain.BookingID, record bookingDomain.Record) error {
	model := toBookingModel(record)
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ?", int64(id)).
		Updates(map[string]interface{}{
			"first_name":       model.FirstName,
			"last_name":        model.LastName,
			"total_price":      model.TotalPrice,
			"deposit_paid":     model.DepositPaid,
			"check_in":         model.CheckIn,
			"check_out":        model.CheckOut,
			"additional_needs": model.AdditionalNeeds,
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return bookingDomain.ErrNotFound
	}
	return nil
}

// --- Mappers ---

func toBookingModel(rec bookingDomain.Record) *BookingModel {
	now := time.Now().UTC()
	return &BookingModel{
		FirstName:       rec.FirstName,
		LastName:        rec.LastName,
		TotalPrice:      rec.TotalPrice,
		DepositPaid:     rec.DepositPaid,
		CheckIn:         rec.BookingDates.CheckIn,
		CheckOut:        rec.BookingDates.CheckOut,
		AdditionalNeeds: rec.AdditionalNeeds,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func toRecord(m *BookingModel) bookingDomain.Record {
	return bookingDomain.Record{
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		TotalPrice:  m.TotalPrice,
		DepositPaid: m.DepositPaid,
		BookingDates: bookingDomain.StayDates{
			CheckIn:  m.CheckIn,
			CheckOut: m.CheckOut,
		},
		AdditionalNeeds: m.AdditionalNeeds,
	}
}
