package repository

import (
	"errors"

	"github.com/Synapsr/Louez-sub011/internal/app/ds"
)

// Методы для магазинов (арендаторы)

func (r *Repository) GetStoreByID(id uint) (*ds.Store, error) {
	var store ds.Store
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *Repository) GetStoreBySlug(slug string) (*ds.Store, error) {
	var store ds.Store
	err := r.db.Where("slug = ? AND is_deleted = ?", slug, false).First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *Repository) StoreSlugTaken(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&ds.Store{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateStore(name, slug string) (*ds.Store, error) {
	store := ds.Store{
		Name:     name,
		Slug:     slug,
		Timezone: "Europe/Paris",
		Currency: "EUR",
		OpenTime: "09:00", CloseTime: "18:00",
		OpenDays: "1111110",
	}

	err := r.db.Create(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// UpdateStoreSettings обновляет только переданные поля настроек
func (r *Repository) UpdateStoreSettings(id uint, name, timezone, currency, openTime, closeTime, openDays *string, advanceNoticeMin *int) error {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if timezone != nil {
		updates["timezone"] = *timezone
	}
	if currency != nil {
		updates["currency"] = *currency
	}
	if openTime != nil {
		updates["open_time"] = *openTime
	}
	if closeTime != nil {
		updates["close_time"] = *closeTime
	}
	if openDays != nil {
		updates["open_days"] = *openDays
	}
	if advanceNoticeMin != nil {
		updates["advance_notice_min"] = *advanceNoticeMin
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.Model(&ds.Store{}).Where("id = ? AND is_deleted = ?", id, false).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("магазин не найден")
	}
	return nil
}
