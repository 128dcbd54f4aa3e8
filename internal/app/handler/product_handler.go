package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/Synapsr/Louez-sub011/internal/app/dto"
	"github.com/Synapsr/Louez-sub011/internal/app/repository"
	"github.com/Synapsr/Louez-sub011/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН ОБОРУДОВАНИЕ ============

func toProductResponse(p repository.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		ImageURL:       p.ImageURL,
		PricingMode:    p.PricingMode,
		BaseRate:       p.BaseRate,
		StartingFrom:   p.StartingFrom,
		Deposit:        p.Deposit,
		Stock:          p.Stock,
		MinDurationMin: p.MinDurationMin,
		MaxDurationMin: p.MaxDurationMin,
	}
}

// imageLink подменяет имя объекта временной ссылкой MinIO.
// Без настроенного хранилища имя отдается как есть.
func (h *APIHandler) imageLink(imageURL string) string {
	if h.MinIOClient == nil || imageURL == "" || imageURL == "placeholder-product.png" {
		return imageURL
	}
	url, err := h.MinIOClient.GetFileURL(imageURL)
	if err != nil {
		logrus.Warnf("Failed to presign image %s: %v", imageURL, err)
		return imageURL
	}
	return url
}

// GetProducts получает каталог оборудования магазина
// @Summary Получение каталога оборудования
// @Description Возвращает каталог магазина с возможностью поиска по названию
// @Tags Products
// @Produce json
// @Param store query string true "Slug магазина"
// @Param query query string false "Поиск по названию"
// @Success 200 {object} dto.ProductListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products [get]
func (h *APIHandler) GetProducts(c *gin.Context) {
	storeSlug := c.Query("store")
	store, err := h.Repository.GetStoreBySlug(storeSlug)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Магазин не найден")
		return
	}

	searchQuery := c.Query("query")
	products, err := h.Repository.GetProducts(store.ID, searchQuery)
	if err != nil {
		logrus.Error("Error getting products: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения каталога")
		return
	}

	// Преобразуем в DTO
	dtoProducts := make([]dto.ProductResponse, len(products))
	for i, p := range products {
		dtoProducts[i] = toProductResponse(p)
		dtoProducts[i].ImageURL = h.imageLink(dtoProducts[i].ImageURL)
	}

	c.JSON(http.StatusOK, dto.ProductListResponse{
		Products: dtoProducts,
		Total:    len(dtoProducts),
	})
}

// GetProduct получает одну запись каталога
// @Summary Получение оборудования по ID
// @Description Возвращает детальную информацию с ценовыми порогами
// @Tags Products
// @Produce json
// @Param id path int true "ID оборудования"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/products/{id} [get]
func (h *APIHandler) GetProduct(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID оборудования")
		return
	}

	product, err := h.Repository.GetProductByID(uint(id))
	if err != nil || product == nil {
		h.errorResponse(c, http.StatusNotFound, "Оборудование не найдено")
		return
	}

	response := toProductResponse(*product)
	response.ImageURL = h.imageLink(response.ImageURL)

	tiers, err := h.Repository.GetPricingTiers(product.ID)
	if err == nil {
		response.Tiers = make([]dto.PricingTierResponse, len(tiers))
		for i, t := range tiers {
			response.Tiers[i] = dto.PricingTierResponse{
				ID:              t.ID,
				MinPeriods:      t.MinPeriods,
				DiscountPercent: t.DiscountPercent,
			}
		}
	}

	c.JSON(http.StatusOK, response)
}

// ownProduct проверяет, что оборудование принадлежит магазину сотрудника
func (h *APIHandler) ownProduct(c *gin.Context, id uint) (*repository.Product, bool) {
	_, storeID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return nil, false
	}

	product, err := h.Repository.GetProductByID(id)
	if err != nil || product == nil || product.StoreID != storeID {
		h.errorResponse(c, http.StatusNotFound, "Оборудование не найдено")
		return nil, false
	}
	return product, true
}

// CreateProduct создает запись каталога
// @Summary Создание оборудования
// @Description Добавляет оборудование в каталог магазина (только для сотрудников)
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProductRequest true "Данные оборудования"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products [post]
func (h *APIHandler) CreateProduct(c *gin.Context) {
	_, storeID, _, err := h.getUserFromContext(c)
	if err != nil || storeID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	stock := req.Stock
	if stock == 0 {
		stock = 1
	}

	product, err := h.Repository.CreateProduct(storeID, req.Name, req.Description, req.PricingMode,
		req.BaseRate, req.Deposit, stock, req.MinDurationMin, req.MaxDurationMin)
	if err != nil {
		logrus.Error("Error creating product: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания оборудования")
		return
	}

	c.JSON(http.StatusCreated, dto.ProductResponse{
		ID:             product.ID,
		Name:           product.Name,
		Description:    product.Description,
		ImageURL:       "placeholder-product.png", // Дефолтное изображение
		PricingMode:    product.PricingMode,
		BaseRate:       product.BaseRate,
		StartingFrom:   product.BaseRate,
		Deposit:        product.Deposit,
		Stock:          product.Stock,
		MinDurationMin: product.MinDurationMin,
		MaxDurationMin: product.MaxDurationMin,
	})
}

// UpdateProduct обновляет запись каталога
// @Summary Обновление оборудования
// @Description Обновляет данные оборудования (только для сотрудников)
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID оборудования"
// @Param request body dto.UpdateProductRequest true "Данные для обновления"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products/{id} [put]
func (h *APIHandler) UpdateProduct(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID оборудования")
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	if _, ok := h.ownProduct(c, uint(id)); !ok {
		return
	}

	// Подготавливаем указатели на поля
	var name, description, pricingMode *string
	var baseRate *float64

	if req.Name != "" {
		name = &req.Name
	}
	if req.Description != "" {
		description = &req.Description
	}
	if req.PricingMode != "" {
		pricingMode = &req.PricingMode
	}
	if req.BaseRate > 0 {
		baseRate = &req.BaseRate
	}

	err = h.Repository.UpdateProduct(uint(id), name, description, pricingMode,
		baseRate, req.Deposit, req.Stock, req.MinDurationMin, req.MaxDurationMin)
	if err != nil {
		logrus.Error("Error updating product: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления оборудования")
		return
	}

	h.successResponse(c, http.StatusOK, "Оборудование успешно обновлено", nil)
}

// DeleteProduct удаляет запись каталога
// @Summary Удаление оборудования
// @Description Логически удаляет оборудование из каталога (только для сотрудников)
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID оборудования"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products/{id} [delete]
func (h *APIHandler) DeleteProduct(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID оборудования")
		return
	}

	product, ok := h.ownProduct(c, uint(id))
	if !ok {
		return
	}

	// Сначала удаляем изображение
	if product.ImageURL != "placeholder-product.png" && product.ImageURL != "" {
		if h.MinIOClient != nil {
			if err := h.MinIOClient.DeleteFile(product.ImageURL); err != nil {
				logrus.Warnf("Failed to delete image from MinIO: %v", err)
			}
		}
		h.Repository.DeleteProductImage(uint(id))
	}

	// Логическое удаление
	err = h.Repository.DeleteProduct(uint(id))
	if err != nil {
		logrus.Error("Error deleting product: ", err)
		h.errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "Оборудование успешно удалено", nil)
}

// UploadProductImage загружает изображение оборудования
// @Summary Загрузка изображения оборудования
// @Description Загружает изображение в MinIO (только для сотрудников)
// @Tags Products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID оборудования"
// @Param image formData file true "Файл изображения"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products/{id}/image [post]
func (h *APIHandler) UploadProductImage(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID оборудования")
		return
	}

	product, ok := h.ownProduct(c, uint(id))
	if !ok {
		return
	}

	// Получаем файл из запроса
	file, err := c.FormFile("image")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Файл не найден в запросе")
		return
	}

	openedFile, err := file.Open()
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return
	}
	defer openedFile.Close()

	fileData, err := io.ReadAll(openedFile)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return
	}

	// Удаляем старое изображение из MinIO (если есть)
	if product.ImageURL != "placeholder-product.png" && product.ImageURL != "" {
		if h.MinIOClient != nil {
			if err := h.MinIOClient.DeleteFile(product.ImageURL); err != nil {
				logrus.Warnf("Failed to delete old image %s: %v", product.ImageURL, err)
			}
		}
	}

	// Загружаем новое изображение в MinIO
	var imageURL string
	if h.MinIOClient != nil {
		imageURL, err = h.MinIOClient.UploadFile(fileData, file.Filename)
		if err != nil {
			logrus.Error("Error uploading to MinIO: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "Ошибка загрузки изображения")
			return
		}
	} else {
		// Fallback если MinIO не настроен
		imageURL = "uploaded_" + file.Filename
	}

	// Обновляем URL изображения в БД
	err = h.Repository.UpdateProductImage(uint(id), imageURL)
	if err != nil {
		logrus.Error("Error updating product image: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления изображения")
		return
	}

	h.successResponse(c, http.StatusOK, "Изображение успешно загружено", gin.H{
		"image_url": h.imageLink(imageURL),
	})
}

// GetProductImage отдает файл изображения оборудования
// @Summary Получение изображения оборудования
// @Description Читает изображение из хранилища и отдает его содержимое
// @Tags Products
// @Produce image/jpeg
// @Param id path int true "ID оборудования"
// @Success 200 {file} binary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products/{id}/image [get]
func (h *APIHandler) GetProductImage(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID оборудования")
		return
	}

	product, err := h.Repository.GetProductByID(uint(id))
	if err != nil || product == nil {
		h.errorResponse(c, http.StatusNotFound, "Оборудование не найдено")
		return
	}

	if h.MinIOClient == nil || product.ImageURL == "" || product.ImageURL == "placeholder-product.png" {
		h.errorResponse(c, http.StatusNotFound, "Изображение не найдено")
		return
	}

	exists, err := h.MinIOClient.FileExists(product.ImageURL)
	if err != nil {
		logrus.Error("Error checking image: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения изображения")
		return
	}
	if !exists {
		h.errorResponse(c, http.StatusNotFound, "Изображение не найдено")
		return
	}

	data, err := h.MinIOClient.DownloadFile(product.ImageURL)
	if err != nil {
		logrus.Error("Error downloading image: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения изображения")
		return
	}

	c.Data(http.StatusOK, storage.ContentTypeFor(product.ImageURL), data)
}

// ============ ДОМЕН ЦЕНОВЫЕ ПОРОГИ ============

// CreatePricingTier добавляет ценовой порог к оборудованию
// @Summary Создание ценового порога
// @Description Добавляет скидку за объем к оборудованию (только для сотрудников)
// @Tags Pricing-Tiers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID оборудования"
// @Param request body dto.CreatePricingTierRequest true "Данные порога"
// @Success 201 {object} dto.PricingTierResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products/{id}/tiers [post]
func (h *APIHandler) CreatePricingTier(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID оборудования")
		return
	}

	var req dto.CreatePricingTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	if _, ok := h.ownProduct(c, uint(id)); !ok {
		return
	}

	tier, err := h.Repository.CreatePricingTier(uint(id), req.MinPeriods, req.DiscountPercent)
	if err != nil {
		logrus.Error("Error creating pricing tier: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания ценового порога")
		return
	}

	c.JSON(http.StatusCreated, dto.PricingTierResponse{
		ID:              tier.ID,
		MinPeriods:      tier.MinPeriods,
		DiscountPercent: tier.DiscountPercent,
	})
}

// DeletePricingTier удаляет ценовой порог
// @Summary Удаление ценового порога
// @Description Удаляет скидку за объем (только для сотрудников)
// @Tags Pricing-Tiers
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID оборудования"
// @Param tier_id path int true "ID порога"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products/{id}/tiers/{tier_id} [delete]
func (h *APIHandler) DeletePricingTier(c *gin.Context) {
	idStr := c.Param("id")
	tierIDStr := c.Param("tier_id")

	id, err1 := strconv.ParseUint(idStr, 10, 32)
	tierID, err2 := strconv.ParseUint(tierIDStr, 10, 32)
	if err1 != nil || err2 != nil || id == 0 || tierID == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверные ID")
		return
	}

	if _, ok := h.ownProduct(c, uint(id)); !ok {
		return
	}

	err := h.Repository.DeletePricingTier(uint(id), uint(tierID))
	if err != nil {
		logrus.Error("Error deleting pricing tier: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка удаления ценового порога")
		return
	}

	h.successResponse(c, http.StatusOK, "Ценовой порог успешно удален", nil)
}
