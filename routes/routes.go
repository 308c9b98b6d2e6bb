package routes

import (
	"time"

	"cafebooking/handlers"
	"cafebooking/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options carries the route-level settings that come from config.
type Options struct {
	AdminJWTSecret string
	Gatherer       prometheus.Gatherer
}

// RegisterAssistantRoutes registers the chat widget endpoints.
func RegisterAssistantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/booking-chat", hb.BookingChatHandler)
	r.DELETE("/booking-chat/:sessionId", hb.ResetBookingChatHandler)
	r.POST("/chat", hb.CafeChatHandler)
}

// RegisterBookingRoutes registers the booking form and the operator listing.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, adminSecret string) {
	r.POST("/bookings", hb.CreateBookingHandler)
	r.GET("/bookings", middleware.JWTAuthAdminMiddleware(adminSecret), hb.ListBookingsHandler)
}

// RegisterOpsRoutes registers health and metrics endpoints.
func RegisterOpsRoutes(r *gin.Engine, hb *handlers.HandlerBundle, gatherer prometheus.Gatherer) {
	r.GET("/health", hb.HealthHandler)
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:   []string{"Content-Length", "X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))

	RegisterAssistantRoutes(r, hb)
	RegisterBookingRoutes(r, hb, opts.AdminJWTSecret)
	RegisterOpsRoutes(r, hb, opts.Gatherer)
}
