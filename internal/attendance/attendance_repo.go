package attendance

import (
	"context"
	"time"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	GetSummaries(ctx context.Context, companyID string, employeeIDs []string, month, year int) (map[string]Summary, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetSummaries aggregates attendance rows into worked days and hours
// per employee for one calendar month. Employees with no rows are
// absent from the map; the builder treats that as full attendance.
func (r *repository) GetSummaries(
	ctx context.Context,
	companyID string,
	employeeIDs []string,
	month, year int,
) (map[string]Summary, error) {
	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)

	type row struct {
		EmployeeID  string
		WorkedDays  int
		WorkedHours float64
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Select(`employee_id::text AS employee_id,
			COUNT(DISTINCT attendance_date) AS worked_days,
			COALESCE(SUM(EXTRACT(EPOCH FROM (clock_out - clock_in)) / 3600), 0) AS worked_hours`).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id IN ?", employeeIDs).
		Where("attendance_date >= ? AND attendance_date < ?", periodStart, periodEnd).
		Where("status = ?", "PRESENT").
		Group("employee_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make(map[string]Summary, len(rows))
	for _, r := range rows {
		summaries[r.EmployeeID] = Summary{
			EmployeeID:  r.EmployeeID,
			WorkedDays:  r.WorkedDays,
			WorkedHours: r.WorkedHours,
		}
	}

	return summaries, nil
}
