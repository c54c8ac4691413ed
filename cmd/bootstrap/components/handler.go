package components

import (
	"booking-engine/internal/handler"
	"booking-engine/internal/handler/api"
	"booking-engine/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewAppointmentHandler,
		api.NewBusinessHandler,
		middleware.NewAuthMiddleware,
		func(av *api.AvailabilityHandler, ap *api.AppointmentHandler, b *api.BusinessHandler) handler.Handlers {
			return handler.Handlers{Availability: av, Appointment: ap, Business: b}
		},
	),
	fx.Invoke(handler.NewRouter),
)
