package ds

// 1. Таблица магазинов (арендаторы SaaS)
type Store struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"type:varchar(100);not null"`
	Slug     string `gorm:"type:varchar(50);unique;not null"` // адрес витрины
	Timezone string `gorm:"type:varchar(50);default:'Europe/Paris';not null"`
	Currency string `gorm:"type:varchar(3);default:'EUR';not null"`

	// Настройки правил аренды
	OpenTime         string `gorm:"type:varchar(5);default:'09:00'"` // ЧЧ:ММ локального времени
	CloseTime        string `gorm:"type:varchar(5);default:'18:00'"`
	OpenDays         string `gorm:"type:varchar(7);default:'1111110'"` // Пн..Вс, 1 = открыто
	AdvanceNoticeMin int    `gorm:"type:int;default:0"`                // минимум минут до начала аренды

	IsDeleted bool `gorm:"type:boolean;default:false;not null"`
}
