package routes

import (
	"github.com/labstack/echo/v4"
	"simpleguide/cmd/internal/http/handler"
)

type Handlers struct {
	Listing    *handler.DefaultListingRoute
	Categories *handler.DefaultCategoryRoute
	Companies  *handler.DefaultCompanyRoute
	Subs       *handler.DefaultSubscriberRoute
	Users      *handler.DefaultUserRoute
	Lookup     *handler.DefaultLookupRoute
	Util       *handler.DefaultUtilRoute
}

// Register mounts the public pages, their JSON mirrors and the staff API.
// Every /api/admin route goes through auth.
func Register(e *echo.Echo, h *Handlers, auth echo.MiddlewareFunc) {
	// Public pages
	e.GET("/", h.Listing.IndexPage)
	e.GET("/subs", h.Listing.ListPage)
	e.GET("/subs/:username", h.Listing.DetailPage)
	e.GET("/search", h.Listing.SearchPage)
	e.GET("/about", h.Listing.AboutPage)

	// Public JSON
	e.GET("/api/subs", h.Listing.ListSubscribers)
	e.GET("/api/subs/:username", h.Listing.GetProfile)
	e.GET("/api/search", h.Listing.Search)
	e.GET("/api/states", h.Listing.GetStates)
	e.GET("/api/categories", h.Categories.GetActiveCategories)

	e.POST("/api/auth/login", h.Users.CreateLogin)

	admin := e.Group("/api/admin", auth)

	// Categories
	admin.GET("/categories", h.Categories.GetCategories)
	admin.GET("/categories/:id", h.Categories.GetCategory)
	admin.POST("/categories", h.Categories.CreateCategory)
	admin.PUT("/categories/:id", h.Categories.UpdateCategory)
	admin.DELETE("/categories/:id", h.Categories.DeleteCategory)

	// Companies
	admin.GET("/companies", h.Companies.GetCompanies)
	admin.GET("/companies/:id", h.Companies.GetCompany)
	admin.POST("/companies", h.Companies.CreateCompany)
	admin.PUT("/companies/:id", h.Companies.UpdateCompany)
	admin.DELETE("/companies/:id", h.Companies.DeleteCompany)

	// Subscribers
	admin.GET("/subscribers", h.Subs.GetSubscribers)
	admin.GET("/subscribers/:id", h.Subs.GetSubscriber)
	admin.POST("/subscribers", h.Subs.CreateSubscriber)
	admin.PUT("/subscribers/:id", h.Subs.UpdateSubscriber)
	admin.DELETE("/subscribers/:id", h.Subs.DeleteSubscriber)

	// Users
	admin.GET("/users", h.Users.GetUsers)
	admin.GET("/users/:id", h.Users.GetUser)
	admin.POST("/users", h.Users.CreateUser)
	admin.PATCH("/users/:id", h.Users.UpdateUser)
	admin.DELETE("/users/:id", h.Users.DeleteUser)

	admin.GET("/lookup/cnpj/:cnpj", h.Lookup.GetCompany)

	// Docker Compose healthcheck
	e.GET("/health", h.Util.Health)
}
