package stores

import (
	"context"
	"errors"

	"github.com/Kagaba/farmlink-api/lifecycle"
	"github.com/Kagaba/farmlink-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the MySQL-backed lifecycle.Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Order(ctx context.Context, orderID uint) (models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, lifecycle.ErrOrderNotFound
		}
		return models.Order{}, err
	}
	return order, nil
}

func (s *GormStore) User(ctx context.Context, userID uint) (models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, lifecycle.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// Transition runs the decide callback against the order row held under
// SELECT ... FOR UPDATE and persists the status write together with any fee
// credit in one transaction. Two concurrent calls on the same order
// serialize on the row lock, so the second one decides against the state the
// first one committed.
func (s *GormStore) Transition(ctx context.Context, orderID uint, decide lifecycle.DecideFunc) (lifecycle.Result, error) {
	var res lifecycle.Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return lifecycle.ErrOrderNotFound
			}
			return err
		}

		mutation, err := decide(order)
		if err != nil {
			return err
		}

		updates := map[string]any{"status": mutation.Status}
		order.Status = mutation.Status
		if mutation.DeliverymanID != nil {
			updates["deliveryman_id"] = *mutation.DeliverymanID
			order.DeliverymanID = mutation.DeliverymanID
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
			return err
		}

		res = lifecycle.Result{Order: order}
		if !mutation.CreditFee {
			return nil
		}

		earnings, err := creditDeliveryFee(tx, *order.DeliverymanID)
		if err != nil {
			return err
		}
		res.Credited = true
		res.Earnings = earnings
		return nil
	})
	if err != nil {
		return lifecycle.Result{}, err
	}
	return res, nil
}

// creditDeliveryFee adds the flat fee to the deliveryman's earnings record,
// creating it on first delivery. Runs inside the caller's transaction.
func creditDeliveryFee(tx *gorm.DB, deliverymanID uint) (decimal.Decimal, error) {
	var user models.User
	if err := tx.First(&user, deliverymanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, lifecycle.ErrDeliverymanNotFound
		}
		return decimal.Zero, err
	}
	if user.Role != models.RoleDeliveryMan {
		return decimal.Zero, lifecycle.ErrDeliverymanNotFound
	}

	var record models.Deliveryman
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", user.ID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.Deliveryman{
			UserID:   user.ID,
			Fullname: user.Fullname,
			Email:    user.Email,
			Status:   models.StatusActive,
			Earnings: lifecycle.DeliveryFee,
		}
		if err := tx.Create(&record).Error; err != nil {
			return decimal.Zero, err
		}
		return record.Earnings, nil
	}
	if err != nil {
		return decimal.Zero, err
	}

	record.Earnings = record.Earnings.Add(lifecycle.DeliveryFee)
	if err := tx.Model(&record).Update("earnings", record.Earnings).Error; err != nil {
		return decimal.Zero, err
	}
	return record.Earnings, nil
}

func (s *GormStore) Stats(ctx context.Context, deliverymanID uint) (lifecycle.Stats, error) {
	stats := lifecycle.Stats{Earnings: decimal.Zero}
	db := s.db.WithContext(ctx)

	orders := db.Model(&models.Order{}).Where("deliveryman_id = ?", deliverymanID)
	if err := orders.Count(&stats.TotalOrders).Error; err != nil {
		return lifecycle.Stats{}, err
	}
	if err := db.Model(&models.Order{}).
		Where("deliveryman_id = ? AND status = ?", deliverymanID, models.OrderApproved).
		Count(&stats.PendingOrders).Error; err != nil {
		return lifecycle.Stats{}, err
	}
	if err := db.Model(&models.Order{}).
		Where("deliveryman_id = ? AND status = ?", deliverymanID, models.OrderDelivered).
		Count(&stats.DeliveredOrders).Error; err != nil {
		return lifecycle.Stats{}, err
	}

	var record models.Deliveryman
	err := db.Where("user_id = ?", deliverymanID).First(&record).Error
	if err == nil {
		stats.Earnings = record.Earnings
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return lifecycle.Stats{}, err
	}
	return stats, nil
}
