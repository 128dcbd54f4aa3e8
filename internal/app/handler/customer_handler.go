package handler

import (
	"net/http"
	"strconv"

	"github.com/Synapsr/Louez-sub011/internal/app/ds"
	"github.com/Synapsr/Louez-sub011/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН КЛИЕНТЫ ============

func toCustomerResponse(c ds.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID,
		FullName:  c.FullName,
		Email:     c.Email,
		Phone:     c.Phone,
		Note:      c.Note,
		CreatedAt: c.CreatedAt,
	}
}

// GetCustomers получает список клиентов магазина
// @Summary Получение списка клиентов
// @Description Возвращает карточки клиентов с поиском по имени (только для сотрудников)
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param query query string false "Поиск по имени"
// @Success 200 {object} dto.CustomerListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/customers [get]
func (h *APIHandler) GetCustomers(c *gin.Context) {
	_, storeID, _, err := h.getUserFromContext(c)
	if err != nil || storeID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	customers, err := h.Repository.GetCustomers(storeID, c.Query("query"))
	if err != nil {
		logrus.Error("Error getting customers: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения клиентов")
		return
	}

	dtoCustomers := make([]dto.CustomerResponse, len(customers))
	for i, customer := range customers {
		dtoCustomers[i] = toCustomerResponse(customer)
	}

	c.JSON(http.StatusOK, dto.CustomerListResponse{
		Customers: dtoCustomers,
		Total:     len(dtoCustomers),
	})
}

// GetCustomer получает карточку клиента
// @Summary Получение клиента по ID
// @Description Возвращает карточку клиента (только для сотрудников)
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID клиента"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/customers/{id} [get]
func (h *APIHandler) GetCustomer(c *gin.Context) {
	_, storeID, _, err := h.getUserFromContext(c)
	if err != nil || storeID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID клиента")
		return
	}

	customer, err := h.Repository.GetCustomerByID(storeID, uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Клиент не найден")
		return
	}

	c.JSON(http.StatusOK, toCustomerResponse(*customer))
}

// CreateCustomer создает карточку клиента
// @Summary Создание клиента
// @Description Создает карточку клиента (только для сотрудников)
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCustomerRequest true "Данные клиента"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/customers [post]
func (h *APIHandler) CreateCustomer(c *gin.Context) {
	_, storeID, _, err := h.getUserFromContext(c)
	if err != nil || storeID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	customer, err := h.Repository.CreateCustomer(storeID, req.FullName, req.Email, req.Phone, req.Note)
	if err != nil {
		logrus.Error("Error creating customer: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания клиента")
		return
	}

	c.JSON(http.StatusCreated, toCustomerResponse(*customer))
}

// UpdateCustomer обновляет карточку клиента
// @Summary Обновление клиента
// @Description Обновляет карточку клиента (только для сотрудников)
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID клиента"
// @Param request body dto.UpdateCustomerRequest true "Данные для обновления"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/customers/{id} [put]
func (h *APIHandler) UpdateCustomer(c *gin.Context) {
	_, storeID, _, err := h.getUserFromContext(c)
	if err != nil || storeID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID клиента")
		return
	}

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	// Подготавливаем указатели на поля
	var fullName, email, phone, note *string
	if req.FullName != "" {
		fullName = &req.FullName
	}
	if req.Email != "" {
		email = &req.Email
	}
	if req.Phone != "" {
		phone = &req.Phone
	}
	if req.Note != "" {
		note = &req.Note
	}

	err = h.Repository.UpdateCustomer(storeID, uint(id), fullName, email, phone, note)
	if err != nil {
		logrus.Error("Error updating customer: ", err)
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "Клиент успешно обновлен", nil)
}

// DeleteCustomer удаляет карточку клиента
// @Summary Удаление клиента
// @Description Логически удаляет карточку клиента (только для сотрудников)
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID клиента"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/customers/{id} [delete]
func (h *APIHandler) DeleteCustomer(c *gin.Context) {
	_, storeID, _, err := h.getUserFromContext(c)
	if err != nil || storeID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID клиента")
		return
	}

	err = h.Repository.DeleteCustomer(storeID, uint(id))
	if err != nil {
		logrus.Error("Error deleting customer: ", err)
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "Клиент успешно удален", nil)
}
