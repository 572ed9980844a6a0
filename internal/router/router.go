package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

type Handler interface {
	CreateClub(c *ginext.Context)
	GetClub(c *ginext.Context)
	ListClubs(c *ginext.Context)
	DeleteClub(c *ginext.Context)
	ListClubCourts(c *ginext.Context)
	CreateCourt(c *ginext.Context)
	UpdateCourt(c *ginext.Context)
	DeleteCourt(c *ginext.Context)
	GetAvailability(c *ginext.Context)
	GetGlobalAvailability(c *ginext.Context)
	CreateBooking(c *ginext.Context)
	RequestCancellation(c *ginext.Context)
	ApproveCancellation(c *ginext.Context)
	RejectCancellation(c *ginext.Context)
	GetUserBookings(c *ginext.Context)
	GetClubBookings(c *ginext.Context)
	PublishToForum(c *ginext.Context)
	RequestToJoin(c *ginext.Context)
	AcceptJoin(c *ginext.Context)
	RejectJoin(c *ginext.Context)
	ListOpenGames(c *ginext.Context)
	CreateUser(c *ginext.Context)
	ListUsers(c *ginext.Context)
}

func InitRouter(mode string, h Handler, mw ...ginext.HandlerFunc) *ginext.Engine {
	router := ginext.New(mode)
	router.Use(mw...)

	api := router.Group("/api")
	{
		// Clubs
		api.POST("/clubs", h.CreateClub)
		api.GET("/clubs", h.ListClubs)
		api.GET("/clubs/:id", h.GetClub)
		api.DELETE("/clubs/:id", h.DeleteClub)
		api.GET("/clubs/:id/courts", h.ListClubCourts)
		api.GET("/clubs/:id/bookings", h.GetClubBookings)

		// Courts
		api.POST("/courts", h.CreateCourt)
		api.PUT("/courts/:id", h.UpdateCourt)
		api.DELETE("/courts/:id", h.DeleteCourt)

		// Availability
		api.GET("/availability", h.GetAvailability)
		api.GET("/availability/global", h.GetGlobalAvailability)

		// Bookings
		api.POST("/bookings", h.CreateBooking)
		api.POST("/bookings/:id/cancel", h.RequestCancellation)
		api.POST("/bookings/:id/cancel/approve", h.ApproveCancellation)
		api.POST("/bookings/:id/cancel/reject", h.RejectCancellation)

		// Forum
		api.POST("/bookings/:id/publish", h.PublishToForum)
		api.POST("/bookings/:id/join", h.RequestToJoin)
		api.POST("/bookings/:id/join/accept", h.AcceptJoin)
		api.POST("/bookings/:id/join/reject", h.RejectJoin)
		api.GET("/forum/games", h.ListOpenGames)

		// Users
		api.POST("/users", h.CreateUser)
		api.GET("/users", h.ListUsers)
		api.GET("/users/:id/bookings", h.GetUserBookings)
	}

	router.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
	})

	return router
}
