package handlers

import (
	"github.com/gin-gonic/gin"

	"church-api/internal/auth"
	"church-api/internal/middleware"
	"church-api/internal/store"
	"church-api/internal/ws"
)

// Register wires every route group onto the engine with its guard
// chain. Guard order is strict: authentication always runs before
// active and admin checks, so an expired token never surfaces as a
// permission error.
func Register(r *gin.Engine, st store.Store, tokens *auth.TokenIssuer, hub *ws.Hub) {
	authHandler := NewAuthHandler(st, tokens)
	userHandler := NewUserHandler(st)
	childHandler := NewChildHandler(st)
	eventHandler := NewEventHandler(st)
	checkinHandler := NewCheckinHandler(st, hub)
	announcementHandler := NewAnnouncementHandler(st, hub)
	prayerHandler := NewPrayerHandler(st)
	donationHandler := NewDonationHandler(st)
	wsHandler := NewWebSocketHandler(st, tokens, hub)

	authed := middleware.RequireAuth(tokens, st)
	active := middleware.RequireActive()
	admin := middleware.RequireAdmin()

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		users := api.Group("/users", authed, active)
		{
			users.GET("/me", userHandler.Me)
			users.PUT("/me", userHandler.UpdateMe)
			users.GET("", admin, userHandler.List)
		}

		children := api.Group("/children", authed, active)
		{
			children.POST("", childHandler.Create)
			children.GET("/me", childHandler.ListMine)
			children.GET("/:id", childHandler.Get)
			children.PUT("/:id", childHandler.Update)
			children.DELETE("/:id", childHandler.Delete)
		}

		events := api.Group("/events")
		{
			events.GET("", eventHandler.List)
			events.GET("/:id", eventHandler.Get)
			events.POST("", authed, active, admin, eventHandler.Create)
			events.PUT("/:id", authed, active, admin, eventHandler.Update)
			events.DELETE("/:id", authed, active, admin, eventHandler.Delete)
		}

		checkins := api.Group("/checkins", authed, active)
		{
			checkins.POST("", checkinHandler.Create)
			checkins.GET("/event/:id", admin, checkinHandler.ListByEvent)
			checkins.GET("/child/:id", checkinHandler.ListByChild)
		}

		announcements := api.Group("/announcements")
		{
			announcements.GET("", announcementHandler.List)
			announcements.GET("/:id", announcementHandler.Get)
			announcements.POST("", authed, active, admin, announcementHandler.Create)
			announcements.PUT("/:id", authed, active, admin, announcementHandler.Update)
			announcements.DELETE("/:id", authed, active, admin, announcementHandler.Delete)
		}

		prayers := api.Group("/prayers", authed, active)
		{
			prayers.POST("", prayerHandler.Create)
			prayers.GET("", admin, prayerHandler.List)
			prayers.PATCH("/:id", admin, prayerHandler.UpdateStatus)
		}

		donations := api.Group("/donations", authed, active)
		{
			donations.POST("", donationHandler.Create)
			donations.GET("/me", donationHandler.ListMine)
			donations.GET("", admin, donationHandler.List)
		}
	}

	r.GET("/ws/feed", wsHandler.ServeFeed)
}
