package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/staffhub-hr/leave-backend-go/internal/handler/http/middleware"
	"github.com/staffhub-hr/leave-backend-go/internal/pkg/jwt"
)

func NewRouter(jwtService jwt.Service, leaveHandler LeaveHandler, employeeHandler EmployeeHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/leave", func(r chi.Router) {
				r.Route("/types", func(r chi.Router) {
					r.Get("/", leaveHandler.ListTypes)
					r.Get("/{id}", leaveHandler.GetType)
				})

				r.Route("/eligibility", func(r chi.Router) {
					r.Get("/my/{typeID}", leaveHandler.CheckMyEligibility)

					// HR only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Get("/{employeeID}/{typeID}", leaveHandler.CheckEligibility)
					})
				})

				r.Route("/balances", func(r chi.Router) {
					r.Get("/my", leaveHandler.GetMyBalances)

					// HR only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Get("/{employeeID}", leaveHandler.GetBalances)
						r.Post("/init", leaveHandler.InitAllocations)
					})
				})

				r.Route("/requests", func(r chi.Router) {
					r.Post("/", leaveHandler.CreateRequest)
					r.Post("/validate", leaveHandler.ValidateRequest)
					r.Get("/my", leaveHandler.GetMyRequests)
					r.Get("/{id}", leaveHandler.GetRequest)
					r.Post("/{id}/cancel", leaveHandler.CancelRequest)

					// HR only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Get("/employee/{employeeID}", leaveHandler.ListRequests)
						r.Post("/approve", leaveHandler.ApproveRequest)
						r.Post("/reject", leaveHandler.RejectRequest)
					})
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Route("/my", func(r chi.Router) {
					r.Get("/", employeeHandler.GetMyProfile)
					r.Put("/", employeeHandler.UpdateMyProfile)
				})

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/{id}", employeeHandler.GetProfile)
					r.Put("/{id}", employeeHandler.UpdateProfile)
				})
			})
		})
	})
	return r
}
