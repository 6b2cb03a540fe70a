package handler

import (
	"github.com/gofiber/fiber/v2"

	"fitmap/internal/apperr"
	"fitmap/internal/docstore"
	"fitmap/internal/model"
	"fitmap/internal/service"
	"fitmap/internal/validation"
)

// Dependencies are the process-wide values the handlers are built from.
type Dependencies struct {
	Store            docstore.Store
	Validator        *validation.Validator
	Focus            service.FocusService
	Gyms             service.GymService
	PersonalTrainers service.PersonalTrainerService
}

// endpoint registers handlers on one path and remembers their verbs, so
// every other verb can be answered with 405 and the allowed list.
type endpoint struct {
	router  fiber.Router
	path    string
	allowed []string
}

func on(r fiber.Router, path string) *endpoint {
	return &endpoint{router: r, path: path}
}

func (e *endpoint) handle(method string, h fiber.Handler) *endpoint {
	e.router.Add(method, e.path, h)
	e.allowed = append(e.allowed, method)
	return e
}

// close must run after the verb handlers: fiber matches in registration order.
func (e *endpoint) close() {
	e.router.All(e.path, methodNotAllowed(e.allowed...))
}

func methodNotAllowed(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return apperr.MethodNotAllowed(c.Method(), allowed...)
	}
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	on(app, "/health").handle(fiber.MethodGet, HealthCheck(deps.Store)).close()
	on(app, "/healthz").handle(fiber.MethodGet, Liveness()).close()

	v1 := app.Group("/v1")
	v := deps.Validator

	on(v1, "/focus").
		handle(fiber.MethodGet, ListFocus(deps.Focus)).
		handle(fiber.MethodPost, CreateFocus(deps.Focus, v)).
		handle(fiber.MethodPut, UpdateFocus(deps.Focus, v)).
		handle(fiber.MethodDelete, DeleteFocus(deps.Focus, v)).
		close()
	on(v1, "/focus/:id").handle(fiber.MethodGet, GetFocus(deps.Focus)).close()

	registerProfile[model.Gym](v1, "/gyms", deps.Gyms, v)
	registerProfile[model.PersonalTrainer](v1, "/personal-trainers", deps.PersonalTrainers, v)
}

func registerProfile[T any, P service.Profile[T]](r fiber.Router, base string, svc service.ProfileService[T], v *validation.Validator) {
	on(r, base).
		handle(fiber.MethodGet, ListProfiles(svc)).
		handle(fiber.MethodPost, CreateProfile(svc, v)).
		close()
	on(r, base+"/:id").
		handle(fiber.MethodGet, GetProfile(svc)).
		handle(fiber.MethodPut, UpdateProfile[T, P](svc, v)).
		handle(fiber.MethodDelete, DeleteProfile(svc)).
		close()
	on(r, base+"/:id/sports").handle(fiber.MethodPost, AddSports(svc, v)).close()
	on(r, base+"/:id/gallery-pictures").handle(fiber.MethodPost, AddGalleryPictures(svc, v)).close()
	on(r, base+"/:id/gallery").handle(fiber.MethodPost, UploadGalleryPicture(svc)).close()

	on(r, base+"/:id/contacts").
		handle(fiber.MethodGet, ListChildren(svc.Contacts())).
		handle(fiber.MethodPost, CreateChildren(svc.AddContacts, v)).
		handle(fiber.MethodPut, UpdateChildren(svc.Contacts(), v)).
		handle(fiber.MethodDelete, DeleteChildren(svc.Contacts(), v)).
		close()
	on(r, base+"/:id/addresses").
		handle(fiber.MethodGet, ListChildren(svc.Addresses())).
		handle(fiber.MethodPost, CreateChildren(svc.AddAddresses, v)).
		handle(fiber.MethodPut, UpdateChildren(svc.Addresses(), v)).
		handle(fiber.MethodDelete, DeleteChildren(svc.Addresses(), v)).
		close()
}
