package routes

import (
	"github.com/elidrum/Nutrease/controllers"
	"github.com/elidrum/Nutrease/middlewares"
	"github.com/elidrum/Nutrease/models"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Food         *controllers.FoodController
	Diary        *controllers.DiaryController
	Connection   *controllers.ConnectionController
	Chat         *controllers.ChatController
	Specialist   *controllers.SpecialistController
	Notification *controllers.NotificationController
	Realtime     *controllers.RealtimeController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.ForgotPassword)
	}

	authed := r.Group("/", middlewares.AuthMiddleware())
	{
		authed.POST("/auth/change-password", controllers.ChangePassword)
		authed.GET("/user/profile", controllers.GetProfile)
		authed.PUT("/user/profile", controllers.UpdateProfile)

		authed.GET("/foods/search", ctrl.Food.Search)

		authed.GET("/connections", ctrl.Connection.List)
		authed.POST("/connections/:id/revoke", ctrl.Connection.Revoke)
		authed.POST("/connections/:id/messages", ctrl.Chat.Post)
		authed.GET("/connections/:id/messages", ctrl.Chat.History)

		authed.GET("/notifications/alerts", ctrl.Notification.ListAlerts)
		authed.POST("/notifications/alerts/:id/read", ctrl.Notification.MarkAlertRead)

		authed.GET("/ws", ctrl.Realtime.EventsWS)
	}

	patient := r.Group("/", middlewares.AuthMiddleware(), middlewares.RequireRole(models.RolePatient))
	{
		patient.GET("/specialists", controllers.ListSpecialists)
		patient.POST("/connections", ctrl.Connection.Request)

		patient.POST("/diary/entries", ctrl.Diary.CreateEntry)
		patient.GET("/diary/entries", ctrl.Diary.ListEntries)
		patient.PUT("/diary/entries/:id", ctrl.Diary.UpdateEntry)
		patient.DELETE("/diary/entries/:id", ctrl.Diary.DeleteEntry)
		patient.GET("/diary/totals", ctrl.Diary.GetTotals)

		patient.GET("/notifications/overdue", ctrl.Notification.Overdue)
	}

	specialist := r.Group("/", middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleSpecialist))
	{
		specialist.GET("/connections/pending", ctrl.Connection.Pending)
		specialist.POST("/connections/:id/approve", ctrl.Connection.Approve)
		specialist.POST("/connections/:id/decline", ctrl.Connection.Decline)

		specialist.GET("/patients/:id/diary", ctrl.Specialist.PatientDiary)
		specialist.GET("/patients/:id/totals", ctrl.Specialist.PatientTotals)
	}

	return r
}
