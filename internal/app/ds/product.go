package ds

// 4. Таблица оборудования (каталог магазина) - ТОЛЬКО справочная информация
type Product struct {
	ID          uint    `gorm:"primaryKey"`
	StoreID     uint    `gorm:"not null;index"`
	Name        string  `gorm:"type:varchar(100);not null"`
	Description string  `gorm:"type:text"`
	IsDeleted   bool    `gorm:"type:boolean;default:false;not null"`
	ImageURL    *string `gorm:"type:varchar(255)"` // Nullable

	PricingMode string  `gorm:"type:varchar(10);not null"`   // hour, day, week
	BaseRate    float64 `gorm:"type:decimal(10,2);not null"` // цена за один период
	Deposit     float64 `gorm:"type:decimal(10,2);default:0"`
	Stock       int     `gorm:"type:int;default:1;not null"` // количество единиц на складе

	// Ограничения длительности аренды в минутах (0 = без ограничения)
	MinDurationMin int `gorm:"type:int;default:0"`
	MaxDurationMin int `gorm:"type:int;default:0"`

	Store Store `gorm:"foreignKey:StoreID"`
}
