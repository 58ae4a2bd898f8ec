package store

import (
	"context"
	"time"

	"alfajr-backend/models"
	"alfajr-backend/utils"
)

// Statistics aggregates counts and sums over every record, soft-deleted
// included where noted.
type Statistics struct {
	TotalCustomers   int            `json:"totalCustomers"`
	ActiveCustomers  int            `json:"activeCustomers"`
	DeletedCustomers int            `json:"deletedCustomers"`
	PaymentStats     PaymentStats   `json:"paymentStats"`
	DeliveryStats    DeliveryStats  `json:"deliveryStats"`
	FinancialStats   FinancialStats `json:"financialStats"`
	TimelineStats    TimelineStats  `json:"timelineStats"`
}

type PaymentStats struct {
	Paid    int `json:"paid"`
	Pending int `json:"pending"`
	Partial int `json:"partial"`
}

type DeliveryStats struct {
	Delivered  int `json:"delivered"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
}

type FinancialStats struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalPaid         float64 `json:"totalPaid"`
	TotalPending      float64 `json:"totalPending"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

type TimelineStats struct {
	Today     int `json:"today"`
	ThisWeek  int `json:"thisWeek"`
	ThisMonth int `json:"thisMonth"`
}

// GetStatistics computes the dashboard aggregates. Time buckets use
// calendar boundaries in local time; the week starts on Saturday.
func (s *Store) GetStatistics(ctx context.Context) (*Statistics, error) {
	var customers []models.Customer
	if err := s.db.WithContext(ctx).Find(&customers).Error; err != nil {
		return nil, storageErr("GetStatistics", err)
	}

	now := time.Now()
	startOfDay := utils.BeginningOfDay(now)
	startOfWeek := utils.BeginningOfWeek(now)
	startOfMonth := utils.BeginningOfMonth(now)

	stats := &Statistics{TotalCustomers: len(customers)}

	for _, c := range customers {
		if c.Metadata.Deleted {
			stats.DeletedCustomers++
		} else {
			stats.ActiveCustomers++
		}

		switch c.Financial.PaymentStatus {
		case models.PaymentPaid:
			stats.PaymentStats.Paid++
		case models.PaymentPartial:
			stats.PaymentStats.Partial++
		default:
			stats.PaymentStats.Pending++
		}

		switch c.Delivery.Status {
		case models.DeliveryDelivered:
			stats.DeliveryStats.Delivered++
		case models.DeliveryInProgress:
			stats.DeliveryStats.InProgress++
		default:
			stats.DeliveryStats.Pending++
		}

		stats.FinancialStats.TotalRevenue += c.Financial.TotalAmount
		stats.FinancialStats.TotalPaid += c.Financial.PaidAmount
		stats.FinancialStats.TotalPending += c.Financial.RemainingAmount

		created := c.Metadata.CreatedAt
		if !created.Before(startOfDay) {
			stats.TimelineStats.Today++
		}
		if !created.Before(startOfWeek) {
			stats.TimelineStats.ThisWeek++
		}
		if !created.Before(startOfMonth) {
			stats.TimelineStats.ThisMonth++
		}
	}

	if len(customers) > 0 {
		stats.FinancialStats.AverageOrderValue =
			stats.FinancialStats.TotalRevenue / float64(len(customers))
	}

	return stats, nil
}
