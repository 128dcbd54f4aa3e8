package ds

import "time"

// 3. Таблица клиентов (карточки клиентов, которые ведет магазин)
type Customer struct {
	ID        uint      `gorm:"primaryKey"`
	StoreID   uint      `gorm:"not null;index"`
	FullName  string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(100)"`
	Phone     string    `gorm:"type:varchar(30)"`
	Note      string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
	IsDeleted bool      `gorm:"type:boolean;default:false;not null"`

	Store Store `gorm:"foreignKey:StoreID"`
}
