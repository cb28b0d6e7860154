package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/staffhub-hr/leave-backend-go/internal/config"
	"github.com/staffhub-hr/leave-backend-go/internal/domain/leave"
	appHTTP "github.com/staffhub-hr/leave-backend-go/internal/handler/http"
	"github.com/staffhub-hr/leave-backend-go/internal/pkg/cron"
	"github.com/staffhub-hr/leave-backend-go/internal/pkg/database"
	"github.com/staffhub-hr/leave-backend-go/internal/pkg/jwt"
	"github.com/staffhub-hr/leave-backend-go/internal/repository/postgresql"
	employeeService "github.com/staffhub-hr/leave-backend-go/internal/service/employee"
	leaveService "github.com/staffhub-hr/leave-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	balanceRepo := postgresql.NewLeaveBalanceRepository(db)
	requestRepo := postgresql.NewLeaveRequestRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	catalog := leave.DefaultCatalog()
	eligibilitySvc := leaveService.NewEligibilityService(catalog, employeeRepo)
	allocationSvc := leaveService.NewAllocationService(catalog, balanceRepo, employeeRepo, eligibilitySvc, auditRepo)
	validatorSvc := leaveService.NewRequestValidator(catalog, eligibilitySvc, balanceRepo, requestRepo)
	txManager := postgresql.NewTransactionManager(db)
	requestSvc := leaveService.NewRequestService(requestRepo, validatorSvc, allocationSvc, txManager)
	profileSvc := employeeService.NewProfileService(employeeRepo, allocationSvc, auditRepo)

	leaveHandler := appHTTP.NewLeaveHandler(catalog, eligibilitySvc, allocationSvc, validatorSvc, requestSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(profileSvc)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("allocation-refresh", 24*time.Hour, func(ctx context.Context) error {
		return allocationSvc.EnsureAllocationsForActive(ctx, time.Now().Year())
	})
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, leaveHandler, employeeHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
