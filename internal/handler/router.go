package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"booking-engine/internal/handler/api"
	reqdto "booking-engine/internal/handler/dto/request"
	"booking-engine/internal/handler/middleware"
	"booking-engine/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Availability *api.AvailabilityHandler
	Appointment  *api.AppointmentHandler
	Business     *api.BusinessHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	reqdto.RegisterValidators()
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := []gin.HandlerFunc{authMiddleware.RequireAuth()}

	apiGroup := engine.Group("/api")
	{
		business := apiGroup.Group("/business/:id")
		addRoutes(business, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Business.GetProfile},
			{Method: http.MethodGet, Path: "/available-slots", Handler: h.Availability.AvailableSlots},
			{Method: http.MethodPost, Path: "/appointments", Handler: h.Appointment.Book},
			{Method: http.MethodGet, Path: "/appointments", Handler: h.Appointment.ListByBusiness, Mw: requireAuth},
			{Method: http.MethodPut, Path: "/hours", Handler: h.Business.SetHours, Mw: requireAuth},
			{Method: http.MethodPost, Path: "/services", Handler: h.Business.AddService, Mw: requireAuth},
		})

		businesses := apiGroup.Group("/businesses")
		businesses.Use(authMiddleware.RequireAuth())
		addRoutes(businesses, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Business.Create},
		})

		appointments := apiGroup.Group("/appointments/:id")
		appointments.Use(authMiddleware.RequireAuth())
		{
			addRoutes(appointments, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Appointment.Get},
				{Method: http.MethodPatch, Path: "/confirm", Handler: h.Appointment.Confirm},
				{Method: http.MethodPatch, Path: "/reject", Handler: h.Appointment.Reject},
				{Method: http.MethodPatch, Path: "/cancel", Handler: h.Appointment.Cancel},
				{Method: http.MethodPatch, Path: "/reschedule", Handler: h.Appointment.Reschedule},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
