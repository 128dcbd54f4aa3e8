package dto

import (
	"time"

	"github.com/Synapsr/Louez-sub011/internal/app/rental"
)

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Оборудование (Products) ============

type ProductResponse struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	ImageURL       string  `json:"image_url"`
	PricingMode    string  `json:"pricing_mode"` // hour, day, week
	BaseRate       float64 `json:"base_rate"`
	StartingFrom   float64 `json:"starting_from"` // цена "от" для витрины
	Deposit        float64 `json:"deposit"`
	Stock          int     `json:"stock"`
	MinDurationMin int     `json:"min_duration_min,omitempty"`
	MaxDurationMin int     `json:"max_duration_min,omitempty"`

	Tiers []PricingTierResponse `json:"tiers,omitempty"` // Только для GET одной записи
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
}

type CreateProductRequest struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	PricingMode    string  `json:"pricing_mode" binding:"required,oneof=hour day week"`
	BaseRate       float64 `json:"base_rate" binding:"required,gt=0"`
	Deposit        float64 `json:"deposit" binding:"omitempty,gte=0"`
	Stock          int     `json:"stock" binding:"omitempty,gte=1"`
	MinDurationMin int     `json:"min_duration_min" binding:"omitempty,gte=0"`
	MaxDurationMin int     `json:"max_duration_min" binding:"omitempty,gte=0"`
}

type UpdateProductRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	PricingMode    string   `json:"pricing_mode" binding:"omitempty,oneof=hour day week"`
	BaseRate       float64  `json:"base_rate" binding:"omitempty,gt=0"`
	Deposit        *float64 `json:"deposit" binding:"omitempty,gte=0"`
	Stock          *int     `json:"stock" binding:"omitempty,gte=1"`
	MinDurationMin *int     `json:"min_duration_min" binding:"omitempty,gte=0"`
	MaxDurationMin *int     `json:"max_duration_min" binding:"omitempty,gte=0"`
}

// ============ Ценовые пороги (Pricing Tiers) ============

type PricingTierResponse struct {
	ID              uint    `json:"id"`
	MinPeriods      int     `json:"min_periods"`
	DiscountPercent float64 `json:"discount_percent"`
}

type CreatePricingTierRequest struct {
	MinPeriods      int     `json:"min_periods" binding:"required,gte=1"`
	DiscountPercent float64 `json:"discount_percent" binding:"required,gt=0,lte=100"`
}

// ============ Клиенты (Customers) ============

type CustomerResponse struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Total     int                `json:"total"`
}

type CreateCustomerRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Note     string `json:"note"`
}

type UpdateCustomerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Note     string `json:"note"`
}

// ============ Брони (Reservations) ============

type ReservationItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"omitempty,gte=1"`
}

type CreateReservationRequest struct {
	StartsAt time.Time                `json:"starts_at" binding:"required"`
	EndsAt   time.Time                `json:"ends_at" binding:"required"`
	Items    []ReservationItemRequest `json:"items" binding:"required,min=1,dive"`
	Note     string                   `json:"note"`
}

type UpdateReservationRequest struct {
	StartsAt time.Time                `json:"starts_at" binding:"required"`
	EndsAt   time.Time                `json:"ends_at" binding:"required"`
	Items    []ReservationItemRequest `json:"items" binding:"omitempty,dive"`
}

type ItemInReservationResp struct {
	ProductID       uint    `json:"product_id"`
	Name            string  `json:"name"`
	ImageURL        string  `json:"image_url"`
	PricingMode     string  `json:"pricing_mode"`
	BaseRate        float64 `json:"base_rate"`
	Quantity        int     `json:"quantity"`
	PeriodRate      float64 `json:"period_rate"`
	DiscountPercent float64 `json:"discount_percent"`
	SubTotal        float64 `json:"subtotal"`
}

type ReservationResponse struct {
	ID           uint                    `json:"id"`
	Status       string                  `json:"status"`
	CreatedAt    time.Time               `json:"created_at"`
	StartsAt     time.Time               `json:"starts_at"`
	EndsAt       time.Time               `json:"ends_at"`
	ConfirmedAt  *time.Time              `json:"confirmed_at,omitempty"`
	CompletedAt  *time.Time              `json:"completed_at,omitempty"`
	Creator      string                  `json:"creator"`  // Логин создателя
	Manager      string                  `json:"manager"`  // Логин сотрудника (если есть)
	Customer     string                  `json:"customer"` // Имя из карточки клиента (если прикреплена)
	TotalCost    float64                 `json:"total_cost,omitempty"`
	DepositTotal float64                 `json:"deposit_total,omitempty"`
	Note         string                  `json:"note,omitempty"`
	Items        []ItemInReservationResp `json:"items,omitempty"` // Только для GET одной брони
	Warnings     []rental.Warning        `json:"warnings,omitempty"`
}

type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

type AttachCustomerRequest struct {
	CustomerID uint `json:"customer_id" binding:"required"`
}

// ============ Расчет стоимости (Quote) ============

type QuoteRequest struct {
	StartsAt time.Time                `json:"starts_at" binding:"required"`
	EndsAt   time.Time                `json:"ends_at" binding:"required"`
	Items    []ReservationItemRequest `json:"items" binding:"required,min=1,dive"`
}

type QuoteLineResponse struct {
	ProductID       uint    `json:"product_id"`
	Name            string  `json:"name"`
	Quantity        int     `json:"quantity"`
	Periods         int     `json:"periods"`
	PeriodRate      float64 `json:"period_rate"`
	DiscountPercent float64 `json:"discount_percent"`
	SubTotal        float64 `json:"subtotal"`
	Deposit         float64 `json:"deposit"`
}

type QuoteResponse struct {
	Lines        []QuoteLineResponse `json:"lines"`
	TotalCost    float64             `json:"total_cost"`
	DepositTotal float64             `json:"deposit_total"`
	Warnings     []rental.Warning    `json:"warnings,omitempty"`
}

// ============ Проверка доступности ============

type AvailabilityRequest struct {
	ProductID uint      `json:"product_id" binding:"required"`
	StartsAt  time.Time `json:"starts_at" binding:"required"`
	EndsAt    time.Time `json:"ends_at" binding:"required"`
	Quantity  int       `json:"quantity" binding:"omitempty,gte=1"`
}

type AvailabilityResponse struct {
	Available bool             `json:"available"`
	Remaining int              `json:"remaining"`
	Warnings  []rental.Warning `json:"warnings,omitempty"`
}

// ============ Настройки магазина (Store) ============

type StoreResponse struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	Timezone         string `json:"timezone"`
	Currency         string `json:"currency"`
	OpenTime         string `json:"open_time"`
	CloseTime        string `json:"close_time"`
	OpenDays         string `json:"open_days"`
	AdvanceNoticeMin int    `json:"advance_notice_min"`
}

type UpdateStoreRequest struct {
	Name             string `json:"name"`
	Timezone         string `json:"timezone"`
	Currency         string `json:"currency" binding:"omitempty,len=3"`
	OpenTime         string `json:"open_time"`
	CloseTime        string `json:"close_time"`
	OpenDays         string `json:"open_days" binding:"omitempty,len=7"`
	AdvanceNoticeMin *int   `json:"advance_notice_min" binding:"omitempty,gte=0"`
}

// ============ Пользователи (Users) ============

type UserResponse struct {
	ID       uint   `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"full_name"`
	Role     int    `json:"role"`
	StoreID  uint   `json:"store_id"`
}

type RegisterRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Store    string `json:"store" binding:"required"` // slug магазина
	Role     int    `json:"role"`
}

type RegisterStoreRequest struct {
	StoreName string `json:"store_name" binding:"required"`
	Slug      string `json:"slug" binding:"required,min=3,max=50"`
	Login     string `json:"login" binding:"required,min=3,max=50"`
	Password  string `json:"password" binding:"required,min=6"`
	FullName  string `json:"full_name" binding:"required"`
}

type CreateStaffRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
}

type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

