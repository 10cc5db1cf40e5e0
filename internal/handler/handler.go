// Package handler wires HTTP routes to the service layer.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jobtrack/jobtrack/internal/data/repository"
	"github.com/jobtrack/jobtrack/internal/middleware"
	"github.com/jobtrack/jobtrack/internal/realtime"
	"github.com/jobtrack/jobtrack/internal/service"
	"github.com/jobtrack/jobtrack/pkg/ecode"
	"github.com/jobtrack/jobtrack/pkg/logger"
	"github.com/jobtrack/jobtrack/pkg/resp"
)

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth *AuthHandler
	Jobs *JobHandler
	WS   *realtime.Handler
}

// New creates the handler layer.
func New(svc *service.Service, hub *realtime.Hub, logger *logger.Logger) *Handler {
	registerValidators()
	return &Handler{
		Auth: NewAuthHandler(svc.Auth, logger),
		Jobs: NewJobHandler(svc.Jobs, logger),
		WS:   realtime.NewHandler(hub, svc.Auth, logger),
	}
}

// registerValidators adds the custom binding validators.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("jobstatus", func(fl validator.FieldLevel) bool {
			return repository.Status(fl.Field().String()).Valid()
		})
	}
}

// RegisterRoutes mounts all routes on the engine.
func (h *Handler) RegisterRoutes(e *gin.Engine, health gin.HandlerFunc) {
	e.GET("/health", health)

	e.GET("/ws", h.WS.HandleConnection)
	e.GET("/ws/stats", middleware.Auth(h.Auth.svc), middleware.RequireAdmin(), h.WS.HandleStats)

	api := e.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", middleware.Auth(h.Auth.svc), h.Auth.Me)
	}

	jobs := api.Group("/jobs", middleware.Auth(h.Auth.svc))
	{
		jobs.POST("", h.Jobs.Create)
		jobs.GET("", h.Jobs.List)
		jobs.GET("/stats", h.Jobs.Stats)
		jobs.GET("/admin/all", middleware.RequireAdmin(), h.Jobs.AdminList)
		jobs.GET("/:id", h.Jobs.Get)
		jobs.PATCH("/:id", h.Jobs.Update)
		jobs.DELETE("/:id", h.Jobs.Delete)
	}

	e.NoRoute(func(c *gin.Context) {
		resp.Fail(c.Writer, resp.NotFound("route not found"))
	})
}

// failValidation renders binding errors field by field.
func failValidation(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		resp.Fail(c.Writer, resp.BadRequest("validation failed", fields))
		return
	}
	resp.Fail(c.Writer, resp.BadRequest("invalid request body"))
}

// failError maps service and repository errors onto the response envelope.
func failError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		resp.Fail(c.Writer, resp.NotFound("job application not found"))
	case errors.Is(err, repository.ErrDuplicateEmail):
		resp.Fail(c.Writer, resp.Conflict("email already registered"))
	case errors.Is(err, service.ErrInvalidCredentials):
		resp.Fail(c.Writer, resp.UnAuthorized(err.Error()))
	case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrInvalidDate):
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
	default:
		log.Errorf(c.Request.Context(), "internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		resp.Fail(c.Writer, resp.InternalServer("internal server error"))
	}
}

// Health returns a health handler backed by the given ping function.
func Health(ping func(c *gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ping(c); err != nil {
			resp.Fail(c.Writer, &resp.Exception{
				Status:  http.StatusServiceUnavailable,
				Code:    ecode.ServerErr,
				Message: "database unreachable",
			})
			return
		}
		resp.Success(c.Writer, map[string]any{"status": "ok"})
	}
}
