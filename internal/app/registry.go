package app

import (
	"database/sql"
	"path/filepath"

	"go-payroll/internal/attendance"
	"go-payroll/internal/company"
	"go-payroll/internal/employee"
	"go-payroll/internal/featureflag"
	"go-payroll/internal/loan"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payrollrun"
	"go-payroll/internal/payslip"
	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"
	"go-payroll/internal/salarycomponent"
	"go-payroll/internal/statutory"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	componentRepo := salarycomponent.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	loanRepo := loan.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	runRepo := payrollrun.NewRepository(gormDB, db)
	slabRepo := statutory.NewRepository(gormDB)
	wizardStore := payrollrun.NewWizardStore(rdb)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, zap.L())

	// --- Services ---
	flagService := featureflag.NewService(gormDB, rdb)
	builder := payslip.NewBuilder(statutory.NewCalculator(statutory.DefaultRates()))
	runService := payrollrun.NewService(payrollrun.ServiceDeps{
		DB:      db,
		Repo:    runRepo,
		Wizards: wizardStore,
		Builder: builder,

		Employees:  employeeRepo,
		Attendance: attendanceRepo,
		Loans:      loanRepo,
		Components: componentRepo,
		Companies:  companyRepo,
		Slabs:      slabRepo,
		Flags:      flagService,

		Outbox: outboxRepo,
		Logger: zap.L(),
	})

	// --- Handlers ---
	runHandler := payrollrun.NewHandlerWithRedis(runService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		payrollrun.RegisterRoutes(api, runHandler, rbacService, rdb)
	}

	return nil
}
