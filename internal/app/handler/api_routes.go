package handler

import (
	"github.com/Synapsr/Louez-sub011/internal/app/middleware"
	"github.com/Synapsr/Louez-sub011/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все REST API маршруты с авторизацией
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	// REST API маршруты
	api := router.Group("/api")

	// ============ Товары (Products) - публичные и для сотрудников ============
	products := api.Group("/products")
	{
		// Публичные эндпоинты витрины (без авторизации, ?store=slug)
		products.GET("", h.GetProducts)               // GET список с фильтрацией
		products.GET("/:id", h.GetProduct)            // GET одна запись с тарифами
		products.GET("/:id/image", h.GetProductImage) // GET файл изображения

		// Только для сотрудников магазина (управление каталогом)
		products.POST("", authMiddleware.WithAuthCheck(role.Staff, role.Owner), h.CreateProduct)
		products.PUT("/:id", authMiddleware.WithAuthCheck(role.Staff, role.Owner), h.UpdateProduct)
		products.DELETE("/:id", authMiddleware.WithAuthCheck(role.Staff, role.Owner), h.DeleteProduct)
		products.POST("/:id/image", authMiddleware.WithAuthCheck(role.Staff, role.Owner), h.UploadProductImage)

		// Тарифные пороги скидок
		products.POST("/:id/tiers", authMiddleware.WithAuthCheck(role.Staff, role.Owner), h.CreatePricingTier)
		products.DELETE("/:id/tiers/:tier_id", authMiddleware.WithAuthCheck(role.Staff, role.Owner), h.DeletePricingTier)
	}

	// ============ Брони (Reservations) ============
	reservations := api.Group("/reservations")
	{
		// Публичные эндпоинты витрины (?store=slug)
		reservations.POST("/quote", h.QuoteReservation)               // POST расчет стоимости без создания брони
		reservations.POST("/check-availability", h.CheckAvailability) // POST проверка доступности на даты

		// Для всех авторизованных пользователей
		reservations.GET("", authMiddleware.WithAuthCheck(role.Customer, role.Staff, role.Owner), h.GetReservations)
		reservations.GET("/:id", authMiddleware.WithAuthCheck(role.Customer, role.Staff, role.Owner), h.GetReservation)
		reservations.POST("", authMiddleware.WithAuthCheck(role.Customer, role.Staff, role.Owner), h.CreateReservation)
		reservations.PUT("/:id", authMiddleware.WithAuthCheck(role.Customer, role.Staff, role.Owner), h.UpdateReservation)
		reservations.PUT("/:id/cancel", authMiddleware.WithAuthCheck(role.Customer, role.Staff, role.Owner), h.CancelReservation)

		// Только для сотрудников (жизненный цикл брони)
		reservations.PUT("/:id/customer", authMiddleware.WithAuthCheck(role.Staff, role.Owner), h.AttachReservationCustomer)
		reservations.PUT("/:id/confirm", authMiddleware.WithAuthCheck(role.Staff, role.Owner), h.ConfirmReservation)   // PUT подтвердить
		reservations.PUT("/:id/start", authMiddleware.WithAuthCheck(role.Staff, role.Owner), h.StartReservation)       // PUT выдать
		reservations.PUT("/:id/complete", authMiddleware.WithAuthCheck(role.Staff, role.Owner), h.CompleteReservation) // PUT завершить
		reservations.PUT("/:id/reject", authMiddleware.WithAuthCheck(role.Staff, role.Owner), h.RejectReservation)     // PUT отклонить
	}

	// ============ Карточки клиентов (Customers) - для сотрудников ============
	customers := api.Group("/customers")
	customers.Use(authMiddleware.WithAuthCheck(role.Staff, role.Owner))
	{
		customers.GET("", h.GetCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.POST("", h.CreateCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
	}

	// ============ Настройки магазина - для сотрудников ============
	store := api.Group("/store")
	{
		store.GET("", authMiddleware.WithAuthCheck(role.Staff, role.Owner), h.GetStoreSettings)
		store.PUT("", authMiddleware.WithAuthCheck(role.Staff, role.Owner), h.UpdateStoreSettings)
	}

	// ============ Аутентификация (публичные эндпоинты) ============
	auth := api.Group("/auth")
	{
		// Публичные эндпоинты
		auth.POST("/register", h.AuthHandler.RegisterUser)            // POST регистрация клиента
		auth.POST("/register-store", h.AuthHandler.RegisterStore)     // POST регистрация магазина с владельцем
		auth.POST("/login", h.AuthHandler.LoginUser)                  // POST аутентификация JWT
		auth.POST("/session-login", h.AuthHandler.SessionLoginUser)   // POST сессионная авторизация (через cookies)
		auth.POST("/session-logout", h.AuthHandler.SessionLogoutUser) // POST выход из сессии (cookies)

		// Защищенные эндпоинты
		auth.GET("/profile", authMiddleware.WithAuthCheck(role.Customer, role.Staff, role.Owner), h.AuthHandler.GetUserProfile)
		auth.PUT("/profile", authMiddleware.WithAuthCheck(role.Customer, role.Staff, role.Owner), h.UpdateProfile) // PUT обновление профиля
		auth.POST("/logout", authMiddleware.WithAuthCheck(role.Customer, role.Staff, role.Owner), h.AuthHandler.LogoutUser)
		auth.POST("/staff", authMiddleware.WithAuthCheck(role.Owner), h.CreateStaffUser) // POST добавление сотрудника
	}

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
