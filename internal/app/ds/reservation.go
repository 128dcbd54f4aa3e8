package ds

import "time"

// Статусы жизненного цикла брони
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusRejected  = "rejected"
)

// 6. Таблица броней
type Reservation struct {
	ID        uint      `gorm:"primaryKey"`
	StoreID   uint      `gorm:"not null;index"`
	Status    string    `gorm:"type:varchar(20);not null"` // pending, confirmed, ongoing, completed, cancelled, rejected
	CreatedAt time.Time `gorm:"not null"`
	CreatorID uint      `gorm:"not null"` // пользователь, оформивший бронь

	StartsAt time.Time `gorm:"not null"`
	EndsAt   time.Time `gorm:"not null"`

	ConfirmedAt *time.Time `gorm:"default:null"` // дата решения сотрудника
	CompletedAt *time.Time `gorm:"default:null"`
	ManagerID   *uint      `gorm:"default:null"` // сотрудник, принявший решение

	// Поля по предметной области
	CustomerID   *uint    `gorm:"default:null"` // карточка клиента (прикрепляет сотрудник)
	TotalCost    *float64 `gorm:"type:decimal(12,2)"`
	DepositTotal float64  `gorm:"type:decimal(12,2);default:0"` // возвращаемый залог
	Note         string   `gorm:"type:text"`

	Store    Store     `gorm:"foreignKey:StoreID"`
	Creator  User      `gorm:"foreignKey:CreatorID"`
	Manager  *User     `gorm:"foreignKey:ManagerID"`
	Customer *Customer `gorm:"foreignKey:CustomerID"`
}
