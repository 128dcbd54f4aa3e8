package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Synapsr/Louez-sub011/internal/app/ds"
	"github.com/Synapsr/Louez-sub011/internal/app/dto"
	"github.com/Synapsr/Louez-sub011/internal/app/pricing"
	"github.com/Synapsr/Louez-sub011/internal/app/rental"
	"github.com/Synapsr/Louez-sub011/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН БРОНИ ============

// storePolicy собирает настройки магазина для проверки правил
func storePolicy(store *ds.Store) rental.StorePolicy {
	loc, err := time.LoadLocation(store.Timezone)
	if err != nil {
		logrus.Warnf("unknown store timezone %q, falling back to UTC", store.Timezone)
		loc = time.UTC
	}

	return rental.StorePolicy{
		Location:      loc,
		OpenMinute:    rental.ParseClock(store.OpenTime),
		CloseMinute:   rental.ParseClock(store.CloseTime),
		OpenDays:      rental.ParseOpenDays(store.OpenDays),
		AdvanceNotice: time.Duration(store.AdvanceNoticeMin) * time.Minute,
	}
}

// buildQuote считает стоимость и собирает предупреждения по всем позициям.
// excludeReservationID исключает собственные удержания при редактировании.
func (h *APIHandler) buildQuote(store *ds.Store, startsAt, endsAt time.Time, items []dto.ReservationItemRequest, excludeReservationID uint) ([]ds.ReservationItem, []dto.QuoteLineResponse, float64, float64, []rental.Warning, string) {
	policy := storePolicy(store)

	dbItems := make([]ds.ReservationItem, 0, len(items))
	lines := make([]dto.QuoteLineResponse, 0, len(items))
	warnings := []rental.Warning{}
	totalCost := 0.0
	depositTotal := 0.0

	// Общие правила магазина проверяем один раз (без ограничений длительности)
	warnings = append(warnings, rental.CheckRules(time.Now(), startsAt, endsAt, policy, rental.ProductRule{})...)

	for _, item := range items {
		product, err := h.Repository.GetProductByID(item.ProductID)
		if err != nil || product == nil || product.StoreID != store.ID {
			return nil, nil, 0, 0, nil, "Оборудование не найдено"
		}

		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}

		tiers, err := h.Repository.GetPricingTiers(product.ID)
		if err != nil {
			logrus.Error("Error getting pricing tiers: ", err)
			return nil, nil, 0, 0, nil, "Ошибка расчета стоимости"
		}

		pricingTiers := make([]pricing.Tier, len(tiers))
		for i, t := range tiers {
			pricingTiers[i] = pricing.Tier{MinPeriods: t.MinPeriods, DiscountPercent: t.DiscountPercent}
		}

		quote, err := pricing.QuoteLine(product.BaseRate, pricing.Mode(product.PricingMode), pricingTiers, startsAt, endsAt, quantity)
		if err != nil {
			return nil, nil, 0, 0, nil, "Ошибка расчета стоимости: " + err.Error()
		}

		// Ограничения длительности конкретного оборудования
		rule := rental.ProductRule{
			MinDuration: time.Duration(product.MinDurationMin) * time.Minute,
			MaxDuration: time.Duration(product.MaxDurationMin) * time.Minute,
		}
		for _, w := range rental.CheckRules(time.Now(), startsAt, endsAt, policy, rule) {
			if w.Code == rental.WarnTooShort || w.Code == rental.WarnTooLong {
				warnings = append(warnings, w)
			}
		}

		// Проверка доступности по пересекающимся броням
		holds, err := h.Repository.GetProductHolds(product.ID, excludeReservationID)
		if err != nil {
			logrus.Error("Error getting product holds: ", err)
			return nil, nil, 0, 0, nil, "Ошибка проверки доступности"
		}
		warnings = append(warnings, rental.CheckAvailability(startsAt, endsAt, quantity, product.Stock, holds)...)

		deposit := product.Deposit * float64(quantity)
		totalCost += quote.SubTotal
		depositTotal += deposit

		dbItems = append(dbItems, ds.ReservationItem{
			ProductID:       product.ID,
			Quantity:        quantity,
			PeriodRate:      quote.PeriodRate,
			DiscountPercent: quote.DiscountPercent,
			SubTotal:        quote.SubTotal,
		})
		lines = append(lines, dto.QuoteLineResponse{
			ProductID:       product.ID,
			Name:            product.Name,
			Quantity:        quantity,
			Periods:         quote.Periods,
			PeriodRate:      quote.PeriodRate,
			DiscountPercent: quote.DiscountPercent,
			SubTotal:        quote.SubTotal,
			Deposit:         deposit,
		})
	}

	return dbItems, lines, totalCost, depositTotal, warnings, ""
}

func toReservationResponse(r *ds.Reservation) dto.ReservationResponse {
	creator := "unknown"
	if r.Creator.Login != "" {
		creator = r.Creator.Login
	}

	manager := ""
	if r.Manager != nil && r.Manager.Login != "" {
		manager = r.Manager.Login
	}

	customer := ""
	if r.Customer != nil {
		customer = r.Customer.FullName
	}

	totalCost := 0.0
	if r.TotalCost != nil {
		totalCost = *r.TotalCost
	}

	return dto.ReservationResponse{
		ID:           r.ID,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		StartsAt:     r.StartsAt,
		EndsAt:       r.EndsAt,
		ConfirmedAt:  r.ConfirmedAt,
		CompletedAt:  r.CompletedAt,
		Creator:      creator,
		Manager:      manager,
		Customer:     customer,
		TotalCost:    totalCost,
		DepositTotal: r.DepositTotal,
		Note:         r.Note,
	}
}

// GetReservations получает список броней
// @Summary Получение списка броней
// @Description Возвращает брони магазина с фильтрацией по статусу и датам. Клиент видит только свои.
// @Tags Reservations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу"
// @Param date_from query string false "Дата начала (формат: 2006-01-02)"
// @Param date_to query string false "Дата окончания (формат: 2006-01-02)"
// @Success 200 {object} dto.ReservationListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/reservations [get]
func (h *APIHandler) GetReservations(c *gin.Context) {
	userID, storeID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	status := c.Query("status")
	var dateFrom, dateTo *time.Time

	if s := c.Query("date_from"); s != "" {
		if parsed, err := time.Parse("2006-01-02", s); err == nil {
			dateFrom = &parsed
		}
	}
	if s := c.Query("date_to"); s != "" {
		if parsed, err := time.Parse("2006-01-02", s); err == nil {
			dateTo = &parsed
		}
	}

	// Клиент видит только собственные брони
	var creatorID *uint
	if userRole == role.Customer {
		creatorID = &userID
	}

	reservations, err := h.Repository.GetReservations(storeID, status, dateFrom, dateTo, creatorID)
	if err != nil {
		logrus.Error("Error getting reservations: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения броней")
		return
	}

	dtoReservations := make([]dto.ReservationResponse, len(reservations))
	for i := range reservations {
		dtoReservations[i] = toReservationResponse(&reservations[i])
	}

	c.JSON(http.StatusOK, dto.ReservationListResponse{
		Reservations: dtoReservations,
		Total:        len(dtoReservations),
	})
}

// GetReservation получает одну бронь
// @Summary Получение брони по ID
// @Description Возвращает детальную информацию о брони с позициями
// @Tags Reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID брони"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/reservations/{id} [get]
func (h *APIHandler) GetReservation(c *gin.Context) {
	userID, storeID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID брони")
		return
	}

	reservation, items, err := h.Repository.GetReservationWithItems(storeID, uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Бронь не найдена")
		return
	}

	// Клиент может смотреть только свою бронь
	if userRole == role.Customer && reservation.CreatorID != userID {
		h.errorResponse(c, http.StatusNotFound, "Бронь не найдена")
		return
	}

	response := toReservationResponse(reservation)
	response.Items = make([]dto.ItemInReservationResp, len(items))
	for i, it := range items {
		response.Items[i] = dto.ItemInReservationResp{
			ProductID:       it.ProductID,
			Name:            it.Name,
			ImageURL:        h.imageLink(it.ImageURL),
			PricingMode:     it.PricingMode,
			BaseRate:        it.BaseRate,
			Quantity:        it.Quantity,
			PeriodRate:      it.PeriodRate,
			DiscountPercent: it.DiscountPercent,
			SubTotal:        it.SubTotal,
		}
	}

	c.JSON(http.StatusOK, response)
}

// CreateReservation создает бронь
// @Summary Создание брони
// @Description Создает бронь в статусе pending: считает стоимость и возвращает предупреждения о нарушенных правилах
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReservationRequest true "Данные брони"
// @Success 201 {object} dto.ReservationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/reservations [post]
func (h *APIHandler) CreateReservation(c *gin.Context) {
	userID, storeID, _, err := h.getUserFromContext(c)
	if err != nil || userID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	store, err := h.Repository.GetStoreByID(storeID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Магазин не найден")
		return
	}

	if !req.EndsAt.After(req.StartsAt) {
		h.errorResponse(c, http.StatusBadRequest, "Окончание аренды должно быть позже начала")
		return
	}

	items, _, totalCost, depositTotal, warnings, errMsg := h.buildQuote(store, req.StartsAt, req.EndsAt, req.Items, 0)
	if errMsg != "" {
		h.errorResponse(c, http.StatusBadRequest, errMsg)
		return
	}

	reservation := &ds.Reservation{
		StoreID:      storeID,
		Status:       ds.StatusPending,
		CreatedAt:    time.Now(),
		CreatorID:    userID,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		TotalCost:    &totalCost,
		DepositTotal: depositTotal,
		Note:         req.Note,
	}

	if err := h.Repository.CreateReservation(reservation, items); err != nil {
		logrus.Error("Error creating reservation: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания брони")
		return
	}

	response := toReservationResponse(reservation)
	response.Warnings = warnings
	c.JSON(http.StatusCreated, response)
}

// UpdateReservation обновляет даты и количества брони
// @Summary Обновление брони
// @Description Меняет даты/количества (только pending), пересчитывает стоимость и возвращает предупреждения о доступности
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID брони"
// @Param request body dto.UpdateReservationRequest true "Данные для обновления"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/reservations/{id} [put]
func (h *APIHandler) UpdateReservation(c *gin.Context) {
	userID, storeID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID брони")
		return
	}

	var req dto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	reservation, existingItems, err := h.Repository.GetReservationWithItems(storeID, uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Бронь не найдена")
		return
	}
	if userRole == role.Customer && reservation.CreatorID != userID {
		h.errorResponse(c, http.StatusNotFound, "Бронь не найдена")
		return
	}

	// Если позиции не переданы — пересчитываем существующие
	itemRequests := req.Items
	if len(itemRequests) == 0 {
		itemRequests = make([]dto.ReservationItemRequest, len(existingItems))
		for i, it := range existingItems {
			itemRequests[i] = dto.ReservationItemRequest{ProductID: it.ProductID, Quantity: it.Quantity}
		}
	}

	store, err := h.Repository.GetStoreByID(storeID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Магазин не найден")
		return
	}

	// Собственные удержания исключаем из проверки доступности
	items, _, totalCost, depositTotal, warnings, errMsg := h.buildQuote(store, req.StartsAt, req.EndsAt, itemRequests, reservation.ID)
	if errMsg != "" {
		h.errorResponse(c, http.StatusBadRequest, errMsg)
		return
	}

	err = h.Repository.UpdateReservationSchedule(storeID, reservation.ID, req.StartsAt, req.EndsAt, totalCost, depositTotal, items)
	if err != nil {
		logrus.Error("Error updating reservation: ", err)
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, _, err := h.Repository.GetReservationWithItems(storeID, reservation.ID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения брони")
		return
	}

	response := toReservationResponse(updated)
	response.Warnings = warnings
	c.JSON(http.StatusOK, response)
}

// AttachReservationCustomer прикрепляет карточку клиента к брони
// @Summary Прикрепление клиента к брони
// @Description Связывает бронь с карточкой клиента (только для сотрудников)
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID брони"
// @Param request body dto.AttachCustomerRequest true "ID карточки клиента"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/reservations/{id}/customer [put]
func (h *APIHandler) AttachReservationCustomer(c *gin.Context) {
	_, storeID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID брони")
		return
	}

	var req dto.AttachCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	// Карточка должна принадлежать тому же магазину
	if _, err := h.Repository.GetCustomerByID(storeID, req.CustomerID); err != nil {
		h.errorResponse(c, http.StatusNotFound, "Клиент не найден")
		return
	}

	if err := h.Repository.AttachCustomer(storeID, uint(id), req.CustomerID); err != nil {
		logrus.Error("Error attaching customer: ", err)
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "Клиент прикреплен к брони", nil)
}

// ConfirmReservation подтверждает бронь
// @Summary Подтверждение брони
// @Description Переводит бронь pending -> confirmed (только для сотрудников)
// @Tags Reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID брони"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/reservations/{id}/confirm [put]
func (h *APIHandler) ConfirmReservation(c *gin.Context) {
	managerID, storeID, _, err := h.getUserFromContext(c)
	if err != nil || managerID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID брони")
		return
	}

	err = h.Repository.ConfirmReservation(storeID, uint(id), managerID)
	if err != nil {
		logrus.Error("Error confirming reservation: ", err)
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "Бронь успешно подтверждена", nil)
}

// StartReservation начинает аренду
// @Summary Выдача оборудования
// @Description Переводит бронь confirmed -> ongoing (только для сотрудников)
// @Tags Reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID брони"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/reservations/{id}/start [put]
func (h *APIHandler) StartReservation(c *gin.Context) {
	_, storeID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID брони")
		return
	}

	err = h.Repository.StartReservation(storeID, uint(id))
	if err != nil {
		logrus.Error("Error starting reservation: ", err)
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "Аренда начата", nil)
}

// CompleteReservation завершает аренду
// @Summary Возврат оборудования
// @Description Переводит бронь ongoing -> completed, залог возвращается клиенту (только для сотрудников)
// @Tags Reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID брони"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/reservations/{id}/complete [put]
func (h *APIHandler) CompleteReservation(c *gin.Context) {
	_, storeID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID брони")
		return
	}

	err = h.Repository.CompleteReservation(storeID, uint(id))
	if err != nil {
		logrus.Error("Error completing reservation: ", err)
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "Аренда успешно завершена", nil)
}

// CancelReservation отменяет бронь
// @Summary Отмена брони
// @Description Переводит бронь pending|confirmed -> cancelled. Клиент может отменить только свою бронь.
// @Tags Reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID брони"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/reservations/{id}/cancel [put]
func (h *APIHandler) CancelReservation(c *gin.Context) {
	userID, storeID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID брони")
		return
	}

	// Клиент может отменить только собственную бронь
	if userRole == role.Customer {
		reservation, err := h.Repository.GetReservationByID(storeID, uint(id))
		if err != nil || reservation.CreatorID != userID {
			h.errorResponse(c, http.StatusNotFound, "Бронь не найдена")
			return
		}
	}

	err = h.Repository.CancelReservation(storeID, uint(id))
	if err != nil {
		logrus.Error("Error cancelling reservation: ", err)
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "Бронь успешно отменена", nil)
}

// RejectReservation отклоняет бронь
// @Summary Отклонение брони
// @Description Переводит бронь pending -> rejected (только для сотрудников)
// @Tags Reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID брони"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/reservations/{id}/reject [put]
func (h *APIHandler) RejectReservation(c *gin.Context) {
	managerID, storeID, _, err := h.getUserFromContext(c)
	if err != nil || managerID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID брони")
		return
	}

	err = h.Repository.RejectReservation(storeID, uint(id), managerID)
	if err != nil {
		logrus.Error("Error rejecting reservation: ", err)
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "Бронь успешно отклонена", nil)
}
