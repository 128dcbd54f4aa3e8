package handler

import (
	"net/http"
	"time"

	"github.com/Synapsr/Louez-sub011/internal/app/dto"
	"github.com/Synapsr/Louez-sub011/internal/app/rental"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН РАСЧЕТ СТОИМОСТИ ============

// QuoteReservation считает стоимость без создания брони
// @Summary Предварительный расчет стоимости
// @Description Считает стоимость аренды по позициям без создания брони (для витрины)
// @Tags Quote
// @Accept json
// @Produce json
// @Param store query string true "Slug магазина"
// @Param request body dto.QuoteRequest true "Даты и позиции"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/reservations/quote [post]
func (h *APIHandler) QuoteReservation(c *gin.Context) {
	store, err := h.Repository.GetStoreBySlug(c.Query("store"))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Магазин не найден")
		return
	}

	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	if !req.EndsAt.After(req.StartsAt) {
		h.errorResponse(c, http.StatusBadRequest, "Окончание аренды должно быть позже начала")
		return
	}

	_, lines, totalCost, depositTotal, warnings, errMsg := h.buildQuote(store, req.StartsAt, req.EndsAt, req.Items, 0)
	if errMsg != "" {
		h.errorResponse(c, http.StatusBadRequest, errMsg)
		return
	}

	c.JSON(http.StatusOK, dto.QuoteResponse{
		Lines:        lines,
		TotalCost:    totalCost,
		DepositTotal: depositTotal,
		Warnings:     warnings,
	})
}

// CheckAvailability проверяет доступность оборудования на даты
// @Summary Проверка доступности
// @Description Проверяет остаток оборудования на выбранные даты с учетом пересекающихся броней
// @Tags Quote
// @Accept json
// @Produce json
// @Param store query string true "Slug магазина"
// @Param request body dto.AvailabilityRequest true "Оборудование и даты"
// @Success 200 {object} dto.AvailabilityResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/reservations/check-availability [post]
func (h *APIHandler) CheckAvailability(c *gin.Context) {
	store, err := h.Repository.GetStoreBySlug(c.Query("store"))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Магазин не найден")
		return
	}

	var req dto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	product, err := h.Repository.GetProductByID(req.ProductID)
	if err != nil || product == nil || product.StoreID != store.ID {
		h.errorResponse(c, http.StatusNotFound, "Оборудование не найдено")
		return
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	holds, err := h.Repository.GetProductHolds(product.ID, 0)
	if err != nil {
		logrus.Error("Error getting product holds: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка проверки доступности")
		return
	}

	// Правила магазина + ограничения длительности тоже попадают в ответ
	policy := storePolicy(store)
	rule := rental.ProductRule{
		MinDuration: time.Duration(product.MinDurationMin) * time.Minute,
		MaxDuration: time.Duration(product.MaxDurationMin) * time.Minute,
	}
	warnings := rental.CheckRules(time.Now(), req.StartsAt, req.EndsAt, policy, rule)
	warnings = append(warnings, rental.CheckAvailability(req.StartsAt, req.EndsAt, quantity, product.Stock, holds)...)

	remaining := product.Stock - rental.PeakUsage(req.StartsAt, req.EndsAt, holds)
	if remaining < 0 {
		remaining = 0
	}

	c.JSON(http.StatusOK, dto.AvailabilityResponse{
		Available: quantity <= remaining,
		Remaining: remaining,
		Warnings:  warnings,
	})
}
