package routes

import (
	"github.com/evalle012006/sg-sub011/constants"
	"github.com/evalle012006/sg-sub011/controllers"
	middlewares "github.com/evalle012006/sg-sub011/middleware"
	"github.com/evalle012006/sg-sub011/services"
	"github.com/evalle012006/sg-sub011/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, m *melody.Melody, settings *services.SettingsService) {

	mailer := services.NewMailService()
	funding := services.NewFundingService(services.FundingServiceOptions{DB: db})
	bookings := services.NewBookingService(services.BookingServiceOptions{
		DB:       db,
		Settings: settings,
		Funding:  funding,
		Redis:    redisCli,
	})
	triggers := services.NewTriggerService(services.TriggerServiceOptions{
		DB:        db,
		Mailer:    mailer,
		Broadcast: notification.NewMelodyService(m),
	})

	authController := controllers.NewAuthController(db, mailer)
	guestController := controllers.NewGuestController(db, settings, triggers)
	bookingController := controllers.NewBookingController(db, redisCli, bookings)
	fundingController := controllers.NewFundingController(db, funding)
	triggerController := controllers.NewTriggerController(db, triggers)
	notificationController := controllers.NewNotificationController(db, triggers)
	settingController := controllers.NewSettingController(db, settings)

	staff := middlewares.AuthMiddleware(constants.RoleStaff, constants.RoleAdmin, constants.RoleCoordinator)
	admin := middlewares.AuthMiddleware(constants.RoleAdmin)

	v1 := router.Group("/api/v1")
	v1.Use(middlewares.SessionMiddleware())

	v1.POST("/auth/login", authController.Login)
	v1.POST("/auth/register", authController.Register)
	v1.POST("/auth/verifyCode", authController.VerifyCode)
	v1.POST("/auth/google", authController.AuthGoogle)
	v1.POST("/auth/forgotPassword", authController.ForgotPassword)
	v1.POST("/auth/resetPassword", authController.ResetPassword)
	v1.DELETE("/auth/logout", authController.Logout)

	v1.GET("/guests", staff, guestController.GetGuests)
	v1.GET("/guests/search", staff, guestController.SearchGuests)
	v1.GET("/guests/:id", staff, guestController.GetGuestByID)
	v1.POST("/guests", staff, guestController.CreateGuest)
	v1.PUT("/guests", staff, guestController.UpdateGuest)
	v1.DELETE("/guests/:id", admin, guestController.DeleteGuest)
	v1.POST("/guestAnswers", guestController.RecordAnswers)
	v1.GET("/guests/:id/notifications", staff, notificationController.GetGuestNotifications)

	// Guests submit enquiries unauthenticated; everything else is staff-side.
	v1.POST("/bookings", bookingController.CreateBooking)
	v1.GET("/bookings", staff, bookingController.GetBookings)
	v1.GET("/bookings/:id", staff, bookingController.GetBookingDetail)
	v1.PUT("/bookings/:id/transition", staff, bookingController.TransitionBooking)
	v1.PUT("/bookings/:id/allocation", staff, bookingController.AttachAllocation)
	v1.PUT("/bookings/:id/consent", staff, bookingController.RecordConsent)
	v1.POST("/bookings/:id/signature", staff, bookingController.UploadSignature)
	v1.POST("/bookings/:id/equipment", staff, bookingController.AssignEquipment)
	v1.DELETE("/bookings/:id", staff, bookingController.DeleteBooking)
	v1.PUT("/bookings/:id/restore", admin, bookingController.RestoreBooking)
	v1.GET("/bookings/:id/history", staff, bookingController.GetBookingHistory)

	v1.GET("/fundingApprovals", staff, fundingController.GetApprovals)
	v1.GET("/fundingApprovals/:id", staff, fundingController.GetApprovalDetail)
	v1.POST("/fundingApprovals", staff, fundingController.CreateApproval)
	v1.POST("/guestApprovals", staff, fundingController.CreateGuestApproval)
	v1.POST("/allocations", staff, fundingController.Allocate)
	v1.POST("/allocations/consume", staff, fundingController.Consume)
	v1.POST("/allocations/release", staff, fundingController.Release)

	v1.GET("/equipment", staff, controllers.GetEquipment)
	v1.POST("/equipment", staff, controllers.CreateEquipment)
	v1.PUT("/equipment", staff, controllers.UpdateEquipment)
	v1.DELETE("/equipment", admin, controllers.DeleteEquipment)

	v1.GET("/courses", controllers.GetCourses)
	v1.POST("/courses", staff, controllers.CreateCourse)
	v1.PUT("/courses", staff, controllers.UpdateCourse)
	v1.DELETE("/courses", admin, controllers.DeleteCourses)

	v1.GET("/emailTriggers", staff, triggerController.GetTriggers)
	v1.POST("/emailTriggers", staff, triggerController.CreateTrigger)
	v1.PUT("/emailTriggers", staff, triggerController.UpdateTrigger)
	v1.DELETE("/emailTriggers", admin, triggerController.DeleteTriggers)
	v1.GET("/emailTriggers/evaluate/:id", staff, triggerController.EvaluateGuestTriggers)

	v1.GET("/notificationRules", staff, notificationController.GetNotificationRules)
	v1.POST("/notificationRules", staff, notificationController.CreateNotificationRule)
	v1.DELETE("/notificationRules", admin, notificationController.DeleteNotificationRules)
	v1.PUT("/notifications/:id/read", staff, notificationController.MarkNotificationRead)
	v1.POST("/notifications/sweep", admin, notificationController.RunNotificationSweep)

	v1.GET("/settings", admin, settingController.GetSettings)
	v1.GET("/settings/catalog", settingController.GetStatusCatalog)
	v1.PUT("/settings", admin, settingController.UpsertSetting)
	v1.POST("/settings/reload", admin, settingController.ReloadSettings)
}
