package app

import (
	"log/slog"

	"github.com/simp-lee/storeadmin/internal/catalog"
	"github.com/simp-lee/storeadmin/internal/event"
	"github.com/simp-lee/storeadmin/internal/module/analytics"
	"github.com/simp-lee/storeadmin/internal/module/crud"
	"github.com/simp-lee/storeadmin/internal/module/media"
	"github.com/simp-lee/storeadmin/internal/module/notification"
	"github.com/simp-lee/storeadmin/internal/module/order"
	"github.com/simp-lee/storeadmin/internal/module/settings"
	"github.com/simp-lee/storeadmin/internal/module/user"
	"github.com/simp-lee/storeadmin/internal/resource"
	"github.com/simp-lee/storeadmin/internal/seed"
	"github.com/simp-lee/storeadmin/internal/store"
)

// Services builds one resource service per catalog definition, keyed by
// collection name.
func Services(backend store.Backend, events event.Publisher, logger *slog.Logger) map[string]*resource.Service {
	defs := catalog.Definitions()
	out := make(map[string]*resource.Service, len(defs))
	for _, def := range defs {
		out[def.Name] = resource.NewService(def, backend, events, logger)
	}
	return out
}

// BuildModules wires every admin module over backend.
func BuildModules(backend store.Backend, events event.Publisher, logger *slog.Logger) []Module {
	svc := Services(backend, events, logger)

	orders := svc[catalog.Orders]
	mediaSvc := svc[catalog.Media]
	notifications := svc[catalog.Notifications]
	users := svc[catalog.Users]

	return []Module{
		order.NewModule(crud.NewHandler(orders), order.NewHandler(order.NewService(orders))),
		crud.NewModule(crud.NewHandler(svc[catalog.Products])),
		crud.NewModule(crud.NewHandler(svc[catalog.Categories])),
		media.NewModule(crud.NewHandler(mediaSvc), media.NewHandler(media.NewService(mediaSvc))),
		notification.NewModule(crud.NewHandler(notifications), notification.NewHandler(notification.NewService(notifications))),
		user.NewModule(crud.NewHandler(users), user.NewUserHandler(user.NewService(users))),
		crud.NewModule(crud.NewHandler(svc[catalog.Pages])),
		crud.NewModule(crud.NewHandler(svc[catalog.Logs])),
		settings.NewModule(settings.NewHandler(settings.NewService(backend, seed.Settings(), events, logger))),
		analytics.NewModule(analytics.NewHandler(analytics.NewService(analytics.Sources{
			Orders:        orders,
			Products:      svc[catalog.Products],
			Users:         users,
			Notifications: notifications,
		}))),
	}
}
