package payrollrun

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	runs := r.Group("/payroll-runs")
	runs.Use(middleware.AuthMiddleware(), middleware.ExtractUserID(), middleware.ContextLogger(zap.L()), middleware.RateLimitByUser(rate.Limit(20), 40))
	{
		runs.GET("", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.GetAll)
		runs.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.GetById)
		runs.GET("/:id/payslips/:payslipId/download", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.DownloadPayslip)
		runs.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "payroll_run", "approve"), handler.Approve)
		runs.POST("/:id/mark-paid", middleware.RBACAuthorize(rbacService, "payroll_run", "pay"), handler.MarkAsPaid)

		runs.GET("/eligible-employees", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.ListEligibleEmployees)
	}

	wizards := r.Group("/payroll-runs/wizard")
	wizards.Use(middleware.AuthMiddleware(), middleware.ExtractUserID(), middleware.ContextLogger(zap.L()), middleware.RateLimitByUser(rate.Limit(20), 40))
	{
		wizards.POST("", middleware.RBACAuthorize(rbacService, "payroll_run", "create"), handler.StartWizard)
		wizards.GET("/:wizardId", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.GetWizard)
		wizards.PUT("/:wizardId/period", middleware.RBACAuthorize(rbacService, "payroll_run", "create"), handler.SetPeriod)
		wizards.PUT("/:wizardId/employees", middleware.RBACAuthorize(rbacService, "payroll_run", "create"), handler.SelectEmployees)
		wizards.POST("/:wizardId/employees/toggle", middleware.RBACAuthorize(rbacService, "payroll_run", "create"), handler.ToggleEmployee)
		wizards.POST("/:wizardId/next", middleware.RBACAuthorize(rbacService, "payroll_run", "create"), handler.Next)
		wizards.POST("/:wizardId/back", middleware.RBACAuthorize(rbacService, "payroll_run", "create"), handler.Back)
		wizards.GET("/:wizardId/preview", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.Preview)

		if redisClient != nil {
			wizards.POST(
				"/:wizardId/commit",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "payroll_run", "commit"),
				handler.Commit,
			)
		} else {
			wizards.POST("/:wizardId/commit", middleware.RBACAuthorize(rbacService, "payroll_run", "commit"), handler.Commit)
		}
	}
}
