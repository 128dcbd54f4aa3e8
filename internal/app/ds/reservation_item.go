package ds

// 7. Таблица многие-ко-многим (брони-оборудование) - связь + количество + расчет
type ReservationItem struct {
	ID            uint `gorm:"primaryKey"`
	ReservationID uint `gorm:"not null;index;uniqueIndex:idx_reservation_product"`
	ProductID     uint `gorm:"not null;index;uniqueIndex:idx_reservation_product"`
	Quantity      int  `gorm:"type:int;default:1;not null"`

	// Зафиксированный расчет на момент оформления
	PeriodRate      float64 `gorm:"type:decimal(10,2);default:0"` // ставка за период после скидки
	DiscountPercent float64 `gorm:"type:decimal(5,2);default:0"`
	SubTotal        float64 `gorm:"type:decimal(12,2);default:0"`

	Reservation Reservation `gorm:"foreignKey:ReservationID"`
	Product     Product     `gorm:"foreignKey:ProductID"`
}
