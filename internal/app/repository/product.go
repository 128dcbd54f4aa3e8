package repository

import (
	"database/sql"
	"errors"

	"github.com/Synapsr/Louez-sub011/internal/app/ds"
	"github.com/Synapsr/Louez-sub011/internal/app/pricing"
)

const defaultProductImage = "placeholder-product.png"

// Простая структура оборудования для отображения
type Product struct {
	ID             uint
	StoreID        uint
	Name           string
	Description    string
	ImageURL       string
	PricingMode    string // hour, day, week
	BaseRate       float64
	StartingFrom   float64 // цена "от" с максимальной скидкой
	Deposit        float64
	Stock          int
	MinDurationMin int
	MaxDurationMin int
}

func (r *Repository) toDisplayProduct(p ds.Product, tiers []ds.PricingTier) Product {
	imageURL := defaultProductImage
	if p.ImageURL != nil && *p.ImageURL != "" {
		imageURL = *p.ImageURL
	}

	return Product{
		ID:             p.ID,
		StoreID:        p.StoreID,
		Name:           p.Name,
		Description:    p.Description,
		ImageURL:       imageURL,
		PricingMode:    p.PricingMode,
		BaseRate:       p.BaseRate,
		StartingFrom:   pricing.StartingFrom(p.BaseRate, toPricingTiers(tiers)),
		Deposit:        p.Deposit,
		Stock:          p.Stock,
		MinDurationMin: p.MinDurationMin,
		MaxDurationMin: p.MaxDurationMin,
	}
}

func toPricingTiers(tiers []ds.PricingTier) []pricing.Tier {
	out := make([]pricing.Tier, len(tiers))
	for i, t := range tiers {
		out[i] = pricing.Tier{MinPeriods: t.MinPeriods, DiscountPercent: t.DiscountPercent}
	}
	return out
}

// Методы для работы с каталогом оборудования

// Получить все оборудование магазина (с поиском по названию)
func (r *Repository) GetProducts(storeID uint, query string) ([]Product, error) {
	var dbProducts []ds.Product
	q := r.db.Where("store_id = ? AND is_deleted = ?", storeID, false)
	if query != "" {
		q = q.Where("name ILIKE ?", "%"+query+"%")
	}
	err := q.Find(&dbProducts).Error
	if err != nil {
		return nil, err
	}

	products := make([]Product, len(dbProducts))
	for i, p := range dbProducts {
		tiers, _ := r.GetPricingTiers(p.ID)
		products[i] = r.toDisplayProduct(p, tiers)
	}
	return products, nil
}

// Получить оборудование по ID
func (r *Repository) GetProductByID(id uint) (*Product, error) {
	// Используем курсор
	query := `SELECT id, store_id, name, description, image_url, pricing_mode, base_rate, deposit, stock, min_duration_min, max_duration_min
	          FROM products
	          WHERE id = $1 AND is_deleted = false`

	row := r.db.Raw(query, id).Row()

	var p ds.Product
	var imageURLPtr *string

	// Сканирование строки из курсора в переменные
	err := row.Scan(&p.ID, &p.StoreID, &p.Name, &p.Description, &imageURLPtr,
		&p.PricingMode, &p.BaseRate, &p.Deposit, &p.Stock, &p.MinDurationMin, &p.MaxDurationMin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Возвращаем nil, если записи нет
		}
		return nil, err
	}
	p.ImageURL = imageURLPtr

	tiers, _ := r.GetPricingTiers(p.ID)
	product := r.toDisplayProduct(p, tiers)
	return &product, nil
}

func (r *Repository) ProductExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.Product{}).Where("id = ? AND is_deleted = ?", id, false).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateProduct(storeID uint, name, description, pricingMode string, baseRate, deposit float64, stock, minDurationMin, maxDurationMin int) (*ds.Product, error) {
	product := ds.Product{
		StoreID:        storeID,
		Name:           name,
		Description:    description,
		PricingMode:    pricingMode,
		BaseRate:       baseRate,
		Deposit:        deposit,
		Stock:          stock,
		MinDurationMin: minDurationMin,
		MaxDurationMin: maxDurationMin,
	}

	err := r.db.Create(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) UpdateProduct(id uint, name, description, pricingMode *string, baseRate, deposit *float64, stock, minDurationMin, maxDurationMin *int) error {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if description != nil {
		updates["description"] = *description
	}
	if pricingMode != nil {
		updates["pricing_mode"] = *pricingMode
	}
	if baseRate != nil {
		updates["base_rate"] = *baseRate
	}
	if deposit != nil {
		updates["deposit"] = *deposit
	}
	if stock != nil {
		updates["stock"] = *stock
	}
	if minDurationMin != nil {
		updates["min_duration_min"] = *minDurationMin
	}
	if maxDurationMin != nil {
		updates["max_duration_min"] = *maxDurationMin
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&ds.Product{}).Where("id = ?", id).Updates(updates).Error
}

// Логическое удаление оборудования
func (r *Repository) DeleteProduct(id uint) error {
	result := r.db.Model(&ds.Product{}).Where("id = ? AND is_deleted = ?", id, false).Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("оборудование не найдено")
	}
	return nil
}

func (r *Repository) UpdateProductImage(id uint, imageURL string) error {
	return r.db.Model(&ds.Product{}).Where("id = ?", id).Update("image_url", imageURL).Error
}

func (r *Repository) DeleteProductImage(id uint) error {
	return r.db.Model(&ds.Product{}).Where("id = ?", id).Update("image_url", nil).Error
}

// Методы для ценовых порогов

func (r *Repository) GetPricingTiers(productID uint) ([]ds.PricingTier, error) {
	var tiers []ds.PricingTier
	err := r.db.Where("product_id = ?", productID).Order("min_periods").Find(&tiers).Error
	return tiers, err
}

func (r *Repository) CreatePricingTier(productID uint, minPeriods int, discountPercent float64) (*ds.PricingTier, error) {
	tier := ds.PricingTier{
		ProductID:       productID,
		MinPeriods:      minPeriods,
		DiscountPercent: discountPercent,
	}
	err := r.db.Create(&tier).Error
	if err != nil {
		return nil, err
	}
	return &tier, nil
}

func (r *Repository) DeletePricingTier(productID, tierID uint) error {
	result := r.db.Where("id = ? AND product_id = ?", tierID, productID).Delete(&ds.PricingTier{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("ценовой порог не найден")
	}
	return nil
}
