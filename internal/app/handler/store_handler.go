package handler

import (
	"net/http"
	"time"

	"github.com/Synapsr/Louez-sub011/internal/app/ds"
	"github.com/Synapsr/Louez-sub011/internal/app/dto"
	"github.com/Synapsr/Louez-sub011/internal/app/rental"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН НАСТРОЙКИ МАГАЗИНА ============

func toStoreResponse(s *ds.Store) dto.StoreResponse {
	return dto.StoreResponse{
		ID:               s.ID,
		Name:             s.Name,
		Slug:             s.Slug,
		Timezone:         s.Timezone,
		Currency:         s.Currency,
		OpenTime:         s.OpenTime,
		CloseTime:        s.CloseTime,
		OpenDays:         s.OpenDays,
		AdvanceNoticeMin: s.AdvanceNoticeMin,
	}
}

// GetStoreSettings получает настройки магазина
// @Summary Получение настроек магазина
// @Description Возвращает настройки текущего магазина (только для сотрудников)
// @Tags Store
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StoreResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/store [get]
func (h *APIHandler) GetStoreSettings(c *gin.Context) {
	_, storeID, _, err := h.getUserFromContext(c)
	if err != nil || storeID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	store, err := h.Repository.GetStoreByID(storeID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Магазин не найден")
		return
	}

	c.JSON(http.StatusOK, toStoreResponse(store))
}

// UpdateStoreSettings обновляет настройки магазина
// @Summary Обновление настроек магазина
// @Description Обновляет часы работы, временную зону и правила аренды (только для сотрудников)
// @Tags Store
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateStoreRequest true "Данные для обновления"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/store [put]
func (h *APIHandler) UpdateStoreSettings(c *gin.Context) {
	_, storeID, _, err := h.getUserFromContext(c)
	if err != nil || storeID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	var req dto.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	// Подготавливаем указатели на поля
	var name, timezone, currency, openTime, closeTime, openDays *string

	if req.Name != "" {
		name = &req.Name
	}
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Неизвестная временная зона")
			return
		}
		timezone = &req.Timezone
	}
	if req.Currency != "" {
		currency = &req.Currency
	}
	if req.OpenTime != "" {
		if rental.ParseClock(req.OpenTime) < 0 {
			h.errorResponse(c, http.StatusBadRequest, "Неверный формат времени открытия (ЧЧ:ММ)")
			return
		}
		openTime = &req.OpenTime
	}
	if req.CloseTime != "" {
		if rental.ParseClock(req.CloseTime) < 0 {
			h.errorResponse(c, http.StatusBadRequest, "Неверный формат времени закрытия (ЧЧ:ММ)")
			return
		}
		closeTime = &req.CloseTime
	}
	if req.OpenDays != "" {
		openDays = &req.OpenDays
	}

	err = h.Repository.UpdateStoreSettings(storeID, name, timezone, currency, openTime, closeTime, openDays, req.AdvanceNoticeMin)
	if err != nil {
		logrus.Error("Error updating store settings: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления настроек")
		return
	}

	h.successResponse(c, http.StatusOK, "Настройки магазина успешно обновлены", nil)
}
