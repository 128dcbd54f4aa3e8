package repository

import (
	"errors"
	"time"

	"github.com/Synapsr/Louez-sub011/internal/app/ds"
)

// Методы для карточек клиентов

// Получить всех клиентов магазина (с поиском по имени)
func (r *Repository) GetCustomers(storeID uint, query string) ([]ds.Customer, error) {
	var customers []ds.Customer
	q := r.db.Where("store_id = ? AND is_deleted = ?", storeID, false)
	if query != "" {
		q = q.Where("full_name ILIKE ?", "%"+query+"%")
	}
	err := q.Order("created_at DESC").Find(&customers).Error
	return customers, err
}

func (r *Repository) GetCustomerByID(storeID, id uint) (*ds.Customer, error) {
	var customer ds.Customer
	err := r.db.Where("id = ? AND store_id = ? AND is_deleted = ?", id, storeID, false).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *Repository) CreateCustomer(storeID uint, fullName, email, phone, note string) (*ds.Customer, error) {
	customer := ds.Customer{
		StoreID:   storeID,
		FullName:  fullName,
		Email:     email,
		Phone:     phone,
		Note:      note,
		CreatedAt: time.Now(),
	}

	err := r.db.Create(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *Repository) UpdateCustomer(storeID, id uint, fullName, email, phone, note *string) error {
	updates := map[string]interface{}{}
	if fullName != nil {
		updates["full_name"] = *fullName
	}
	if email != nil {
		updates["email"] = *email
	}
	if phone != nil {
		updates["phone"] = *phone
	}
	if note != nil {
		updates["note"] = *note
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.Model(&ds.Customer{}).
		Where("id = ? AND store_id = ? AND is_deleted = ?", id, storeID, false).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("клиент не найден")
	}
	return nil
}

// Логическое удаление карточки клиента
func (r *Repository) DeleteCustomer(storeID, id uint) error {
	result := r.db.Model(&ds.Customer{}).
		Where("id = ? AND store_id = ? AND is_deleted = ?", id, storeID, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("клиент не найден")
	}
	return nil
}
