package repository

import (
	"errors"
	"time"

	"github.com/Synapsr/Louez-sub011/internal/app/ds"
	"github.com/Synapsr/Louez-sub011/internal/app/rental"

	"gorm.io/gorm"
)

// Структура позиции в брони (с данными из М-М таблицы)
type ItemInReservation struct {
	ItemID          uint // ID записи в reservation_items
	ProductID       uint
	Name            string
	ImageURL        string
	PricingMode     string
	BaseRate        float64
	Quantity        int
	PeriodRate      float64
	DiscountPercent float64
	SubTotal        float64
}

// Методы для работы с бронями

// Получить брони магазина с фильтрацией по статусу и датам.
// creatorID != nil ограничивает выборку бронями конкретного пользователя.
func (r *Repository) GetReservations(storeID uint, status string, dateFrom, dateTo *time.Time, creatorID *uint) ([]ds.Reservation, error) {
	var reservations []ds.Reservation

	query := r.db.Preload("Creator").Preload("Manager").Preload("Customer").
		Where("store_id = ?", storeID)

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if dateFrom != nil {
		query = query.Where("starts_at >= ?", *dateFrom)
	}
	if dateTo != nil {
		query = query.Where("starts_at <= ?", *dateTo)
	}
	if creatorID != nil {
		query = query.Where("creator_id = ?", *creatorID)
	}

	err := query.Order("created_at DESC").Find(&reservations).Error
	return reservations, err
}

// Получить бронь по ID в рамках магазина
func (r *Repository) GetReservationByID(storeID, id uint) (*ds.Reservation, error) {
	var reservation ds.Reservation
	err := r.db.Preload("Creator").Preload("Manager").Preload("Customer").
		Where("id = ? AND store_id = ?", id, storeID).
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Получить бронь вместе с позициями
func (r *Repository) GetReservationWithItems(storeID, id uint) (*ds.Reservation, []ItemInReservation, error) {
	reservation, err := r.GetReservationByID(storeID, id)
	if err != nil {
		return nil, nil, err
	}

	var dbItems []ds.ReservationItem
	err = r.db.Where("reservation_id = ?", reservation.ID).Find(&dbItems).Error
	if err != nil {
		return nil, nil, err
	}

	if len(dbItems) == 0 {
		return reservation, []ItemInReservation{}, nil
	}

	var productIDs []uint
	for _, it := range dbItems {
		productIDs = append(productIDs, it.ProductID)
	}

	var dbProducts []ds.Product
	err = r.db.Where("id IN ?", productIDs).Find(&dbProducts).Error
	if err != nil {
		return nil, nil, err
	}

	// Создаем map для быстрого доступа к данным оборудования
	productMap := make(map[uint]ds.Product)
	for _, p := range dbProducts {
		productMap[p.ID] = p
	}

	items := make([]ItemInReservation, 0, len(dbItems))
	for _, it := range dbItems {
		p, exists := productMap[it.ProductID]
		if !exists {
			continue // Оборудование удалено
		}

		imageURL := defaultProductImage
		if p.ImageURL != nil && *p.ImageURL != "" {
			imageURL = *p.ImageURL
		}

		items = append(items, ItemInReservation{
			ItemID:          it.ID,
			ProductID:       p.ID,
			Name:            p.Name,
			ImageURL:        imageURL,
			PricingMode:     p.PricingMode,
			BaseRate:        p.BaseRate,
			Quantity:        it.Quantity,
			PeriodRate:      it.PeriodRate,
			DiscountPercent: it.DiscountPercent,
			SubTotal:        it.SubTotal,
		})
	}
	return reservation, items, nil
}

// Создать бронь с позициями в одной транзакции
func (r *Repository) CreateReservation(reservation *ds.Reservation, items []ds.ReservationItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reservation).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ReservationID = reservation.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Обновить даты брони и пересчитанные позиции (только pending)
func (r *Repository) UpdateReservationSchedule(storeID, id uint, startsAt, endsAt time.Time, totalCost, depositTotal float64, items []ds.ReservationItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ds.Reservation{}).
			Where("id = ? AND store_id = ? AND status = ?", id, storeID, ds.StatusPending).
			Updates(map[string]interface{}{
				"starts_at":     startsAt,
				"ends_at":       endsAt,
				"total_cost":    totalCost,
				"deposit_total": depositTotal,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("бронь нельзя изменить - неверный статус или ID")
		}

		// Позиции пересоздаются целиком: иначе строки разойдутся с
		// сохраненными итогами при добавлении или удалении оборудования
		if err := tx.Where("reservation_id = ?", id).Delete(&ds.ReservationItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].ReservationID = id
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Прикрепить карточку клиента к брони
func (r *Repository) AttachCustomer(storeID, reservationID, customerID uint) error {
	result := r.db.Model(&ds.Reservation{}).
		Where("id = ? AND store_id = ?", reservationID, storeID).
		Update("customer_id", customerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("бронь не найдена")
	}
	return nil
}

// Переходы жизненного цикла. SQL операции с проверкой текущего статуса,
// чтобы переход был атомарным.

// pending -> confirmed (сотрудник)
func (r *Repository) ConfirmReservation(storeID, id, managerID uint) error {
	result := r.db.Exec(
		"UPDATE reservations SET status = ?, manager_id = ?, confirmed_at = ? WHERE id = ? AND store_id = ? AND status = ?",
		ds.StatusConfirmed, managerID, time.Now(), id, storeID, ds.StatusPending)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("бронь нельзя подтвердить - неверный статус или ID")
	}
	return nil
}

// confirmed -> ongoing (выдача оборудования)
func (r *Repository) StartReservation(storeID, id uint) error {
	result := r.db.Exec(
		"UPDATE reservations SET status = ? WHERE id = ? AND store_id = ? AND status = ?",
		ds.StatusOngoing, id, storeID, ds.StatusConfirmed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("бронь нельзя начать - неверный статус или ID")
	}
	return nil
}

// ongoing -> completed (возврат оборудования, залог возвращается)
func (r *Repository) CompleteReservation(storeID, id uint) error {
	result := r.db.Exec(
		"UPDATE reservations SET status = ?, completed_at = ? WHERE id = ? AND store_id = ? AND status = ?",
		ds.StatusCompleted, time.Now(), id, storeID, ds.StatusOngoing)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("бронь нельзя завершить - неверный статус или ID")
	}
	return nil
}

// pending|confirmed -> cancelled (создатель или сотрудник)
func (r *Repository) CancelReservation(storeID, id uint) error {
	result := r.db.Exec(
		"UPDATE reservations SET status = ? WHERE id = ? AND store_id = ? AND status IN (?, ?)",
		ds.StatusCancelled, id, storeID, ds.StatusPending, ds.StatusConfirmed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("бронь нельзя отменить - неверный статус или ID")
	}
	return nil
}

// pending -> rejected (сотрудник)
func (r *Repository) RejectReservation(storeID, id, managerID uint) error {
	result := r.db.Exec(
		"UPDATE reservations SET status = ?, manager_id = ?, confirmed_at = ? WHERE id = ? AND store_id = ? AND status = ?",
		ds.StatusRejected, managerID, time.Now(), id, storeID, ds.StatusPending)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("бронь нельзя отклонить - неверный статус или ID")
	}
	return nil
}

// GetProductHolds возвращает удержания склада по оборудованию для проверки
// доступности. excludeReservationID исключает собственную бронь при
// редактировании (0 = ничего не исключать).
func (r *Repository) GetProductHolds(productID, excludeReservationID uint) ([]rental.Hold, error) {
	rows, err := r.db.Raw(
		`SELECT r.starts_at, r.ends_at, ri.quantity, r.status
		 FROM reservation_items ri
		 JOIN reservations r ON r.id = ri.reservation_id
		 WHERE ri.product_id = $1 AND r.id <> $2 AND r.status IN ('pending', 'confirmed', 'ongoing')`,
		productID, excludeReservationID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holds []rental.Hold
	for rows.Next() {
		var h rental.Hold
		if err := rows.Scan(&h.Start, &h.End, &h.Quantity, &h.Status); err != nil {
			return nil, err
		}
		holds = append(holds, h)
	}
	return holds, rows.Err()
}

// Количество позиций в брони
func (r *Repository) GetReservationItemCount(reservationID uint) int {
	var count int64
	err := r.db.Model(&ds.ReservationItem{}).Where("reservation_id = ?", reservationID).Count(&count).Error
	if err != nil {
		return 0
	}
	return int(count)
}
