package payrollrun

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/company"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/featureflag"
	"go-payroll/internal/loan"
	"go-payroll/internal/messaging/kafka"
	payrollrunerrors "go-payroll/internal/payrollrun/errors"
	"go-payroll/internal/payslip"
	"go-payroll/internal/salarycomponent"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/statutory"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// overtimeMultiplier applies to hours worked beyond the standard
// eight-hour day, on the employee's base hourly rate.
const (
	standardHoursPerDay = 8
	overtimeMultiplier  = 1.5
)

//go:generate mockgen -source=run_service.go -destination=mock/run_service_mock.go -package=mock
type Service interface {
	StartWizard(ctx context.Context, companyID string) (WizardResponse, error)
	GetWizard(ctx context.Context, companyID, wizardID string) (WizardResponse, error)
	SetPeriod(ctx context.Context, companyID, wizardID string, req SetPeriodRequest) (WizardResponse, error)
	SelectEmployees(ctx context.Context, companyID, wizardID string, req SelectEmployeesRequest) (WizardResponse, error)
	ToggleEmployee(ctx context.Context, companyID, wizardID string, req ToggleEmployeeRequest) (WizardResponse, error)
	Next(ctx context.Context, companyID, wizardID string) (WizardResponse, error)
	Back(ctx context.Context, companyID, wizardID string) (WizardResponse, error)
	ListEligibleEmployees(ctx context.Context, companyID string) ([]EligibleEmployeeResponse, error)
	Preview(ctx context.Context, companyID, wizardID string) (PreviewResponse, error)
	Commit(ctx context.Context, companyID, actorID, wizardID string) (RunResponse, error)
	GetAll(ctx context.Context, companyID string) ([]RunResponse, error)
	GetByID(ctx context.Context, companyID, id string) (RunDetailResponse, error)
	GetPayslip(ctx context.Context, companyID, runID, payslipID string) (*payslip.PaySlip, string, error)
	Approve(ctx context.Context, companyID, actorID, id string) (RunResponse, error)
	MarkAsPaid(ctx context.Context, companyID, actorID, id string) (RunResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	wizards WizardRepository
	builder *payslip.Builder

	employees  employee.Repository
	attendance attendance.Repository
	loans      loan.Repository
	components salarycomponent.Repository
	companies  company.Repository
	slabs      statutory.Repository
	flags      featureflag.Service

	outbox kafka.OutboxRepository
	logger *zap.Logger
}

type ServiceDeps struct {
	DB      *sql.DB
	Repo    Repository
	Wizards WizardRepository
	Builder *payslip.Builder

	Employees  employee.Repository
	Attendance attendance.Repository
	Loans      loan.Repository
	Components salarycomponent.Repository
	Companies  company.Repository
	Slabs      statutory.Repository
	Flags      featureflag.Service

	Outbox kafka.OutboxRepository
	Logger *zap.Logger
}

func NewService(deps ServiceDeps) Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.L()
	}
	return &service{
		db:         deps.DB,
		repo:       deps.Repo,
		wizards:    deps.Wizards,
		builder:    deps.Builder,
		employees:  deps.Employees,
		attendance: deps.Attendance,
		loans:      deps.Loans,
		components: deps.Components,
		companies:  deps.Companies,
		slabs:      deps.Slabs,
		flags:      deps.Flags,
		outbox:     deps.Outbox,
		logger:     logger.Named("payrollrun.service"),
	}
}

func (s *service) StartWizard(ctx context.Context, companyID string) (WizardResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return WizardResponse{}, payrollrunerrors.ErrInvalidCompanyID
	}

	w := NewWizard(companyID)
	if err := s.wizards.Save(ctx, w); err != nil {
		return WizardResponse{}, err
	}

	s.logger.Info("payroll wizard started",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("wizard_id", w.ID),
	)
	return mapWizardResponse(w), nil
}

func (s *service) GetWizard(ctx context.Context, companyID, wizardID string) (WizardResponse, error) {
	w, err := s.wizards.Get(ctx, companyID, wizardID)
	if err != nil {
		return WizardResponse{}, err
	}
	return mapWizardResponse(w), nil
}

// mutateWizard loads, applies, and saves under last-write-wins
// semantics. Wizard sessions belong to a single operator, so a plain
// reload-apply-save is enough.
func (s *service) mutateWizard(
	ctx context.Context,
	companyID, wizardID string,
	apply func(w *Wizard) error,
) (WizardResponse, error) {
	w, err := s.wizards.Get(ctx, companyID, wizardID)
	if err != nil {
		return WizardResponse{}, err
	}

	if err := apply(w); err != nil {
		return WizardResponse{}, err
	}

	if err := s.wizards.Save(ctx, w); err != nil {
		return WizardResponse{}, err
	}
	return mapWizardResponse(w), nil
}

func (s *service) SetPeriod(ctx context.Context, companyID, wizardID string, req SetPeriodRequest) (WizardResponse, error) {
	payDate, err := time.Parse("2006-01-02", req.PayDate)
	if err != nil {
		return WizardResponse{}, payrollrunerrors.ErrInvalidPayDate
	}

	return s.mutateWizard(ctx, companyID, wizardID, func(w *Wizard) error {
		return w.SetPeriod(req.Month, req.Year, payDate)
	})
}

func (s *service) SelectEmployees(ctx context.Context, companyID, wizardID string, req SelectEmployeesRequest) (WizardResponse, error) {
	if err := s.checkEligible(ctx, companyID, req.EmployeeIDs); err != nil {
		return WizardResponse{}, err
	}

	return s.mutateWizard(ctx, companyID, wizardID, func(w *Wizard) error {
		return w.SelectEmployees(req.EmployeeIDs)
	})
}

func (s *service) ToggleEmployee(ctx context.Context, companyID, wizardID string, req ToggleEmployeeRequest) (WizardResponse, error) {
	if err := s.checkEligible(ctx, companyID, []string{req.EmployeeID}); err != nil {
		return WizardResponse{}, err
	}

	return s.mutateWizard(ctx, companyID, wizardID, func(w *Wizard) error {
		return w.ToggleEmployee(req.EmployeeID)
	})
}

// Next advances the wizard. Landing on the employee step defaults to
// every active employee selected, so the operator deselects from a
// full list rather than building one up.
func (s *service) Next(ctx context.Context, companyID, wizardID string) (WizardResponse, error) {
	return s.mutateWizard(ctx, companyID, wizardID, func(w *Wizard) error {
		if err := w.Next(); err != nil {
			return err
		}
		if w.Step != StepSelectingEmployees || len(w.SelectedEmployeeIDs) > 0 {
			return nil
		}

		active, err := s.employees.ListActive(ctx, companyID)
		if err != nil {
			return err
		}
		if len(active) == 0 {
			return nil
		}
		ids := make([]string, len(active))
		for i, e := range active {
			ids[i] = e.ID.String()
		}
		return w.SelectEmployees(ids)
	})
}

func (s *service) Back(ctx context.Context, companyID, wizardID string) (WizardResponse, error) {
	return s.mutateWizard(ctx, companyID, wizardID, func(w *Wizard) error {
		return w.Back()
	})
}

func (s *service) ListEligibleEmployees(ctx context.Context, companyID string) ([]EligibleEmployeeResponse, error) {
	employees, err := s.employees.ListActive(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]EligibleEmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = EligibleEmployeeResponse{
			ID:             e.ID.String(),
			FullName:       e.FullName,
			EmployeeNumber: e.EmployeeNumber,
			BasicSalary:    e.BasicSalary,
		}
		if e.Department != nil {
			name := e.Department.Name
			resp[i].DepartmentName = &name
		}
	}
	return resp, nil
}

// checkEligible rejects ids that don't resolve to an active employee
// of this company.
func (s *service) checkEligible(ctx context.Context, companyID string, ids []string) error {
	found, err := s.employees.FindByIDs(ctx, companyID, ids)
	if err != nil {
		return err
	}

	active := make(map[string]bool, len(found))
	for _, e := range found {
		if e.EmploymentStatus == employee.StatusActive {
			active[e.ID.String()] = true
		}
	}
	for _, id := range ids {
		if !active[id] {
			return payrollrunerrors.ErrEmployeeNotEligible
		}
	}
	return nil
}

// Preview derives payslips and totals from the latest inputs. Nothing
// is cached or persisted; if the wizard mutated while deriving, the
// stale result is discarded and the caller retries against the newer
// selection.
func (s *service) Preview(ctx context.Context, companyID, wizardID string) (PreviewResponse, error) {
	w, err := s.wizards.Get(ctx, companyID, wizardID)
	if err != nil {
		return PreviewResponse{}, err
	}
	if w.Step != StepReviewing && w.Step != StepConfirming {
		return PreviewResponse{}, payrollrunerrors.ErrWizardStep
	}

	revision := w.Revision

	slips, err := s.derivePayslips(ctx, w)
	if err != nil {
		return PreviewResponse{}, err
	}

	latest, err := s.wizards.Get(ctx, companyID, wizardID)
	if err != nil {
		return PreviewResponse{}, err
	}
	if latest.Revision != revision {
		return PreviewResponse{}, payrollrunerrors.ErrPreviewSuperseded
	}

	return PreviewResponse{
		WizardID: w.ID,
		Revision: revision,
		Totals:   Aggregate(slips),
		Payslips: slips,
	}, nil
}

// derivePayslips is the fan-out behind both preview and commit: load
// every input the builder needs and compute one slip per selected
// employee, ordered by employee number.
func (s *service) derivePayslips(ctx context.Context, w *Wizard) ([]payslip.PaySlip, error) {
	companyID := w.CompanyID
	ids := w.SelectedEmployeeIDs

	employees, err := s.employees.FindByIDs(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}
	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}
	eligible := make([]employee.Employee, 0, len(employees))
	for _, e := range employees {
		if selected[e.ID.String()] && e.EmploymentStatus == employee.StatusActive {
			eligible = append(eligible, e)
		}
	}
	if len(eligible) != len(ids) {
		return nil, payrollrunerrors.ErrEmployeeNotEligible
	}
	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].EmployeeNumber < eligible[j].EmployeeNumber
	})

	summaries, err := s.attendance.GetSummaries(ctx, companyID, ids, w.Month, w.Year)
	if err != nil {
		return nil, err
	}

	loansEnabled, err := s.flags.IsEnabled(ctx, companyID, featureflag.FlagLoansEnabled)
	if err != nil {
		return nil, err
	}
	var deductions map[string][]loan.Deduction
	if loansEnabled {
		if deductions, err = s.loans.GetActiveDeductions(ctx, companyID, ids); err != nil {
			return nil, err
		}
	}

	components, err := s.components.ListActive(ctx, companyID)
	if err != nil {
		return nil, err
	}

	slabs, err := s.slabs.GetActiveSlabs(ctx, companyID)
	if err != nil {
		return nil, err
	}

	comp, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	workingDays := comp.WorkingDays
	if workingDays <= 0 {
		workingDays = payslip.DefaultWorkingDays
	}

	periodStart, periodEnd := w.PeriodBounds()

	slips := make([]payslip.PaySlip, 0, len(eligible))
	for _, e := range eligible {
		in := payslip.BuildInput{
			Employee:     e,
			PeriodStart:  periodStart,
			PeriodEnd:    periodEnd,
			WorkingDays:  workingDays,
			Components:   components,
			Loans:        deductions[e.ID.String()],
			LoansEnabled: loansEnabled,
			Slabs:        slabs,
		}

		if summary, ok := summaries[e.ID.String()]; ok {
			worked := summary.WorkedDays
			in.WorkedDays = &worked
			in.OvertimeAmount = overtimeAmount(e.BasicSalary, summary, workingDays)
		}

		slip, err := s.builder.Build(in)
		if err != nil {
			return nil, err
		}
		slips = append(slips, *slip)
	}

	return slips, nil
}

// overtimeAmount pays hours beyond eight per worked day at 1.5x the
// base hourly rate.
func overtimeAmount(basic int64, summary attendance.Summary, workingDays int) int64 {
	extraHours := summary.WorkedHours - float64(summary.WorkedDays*standardHoursPerDay)
	if extraHours <= 0 {
		return 0
	}
	hourlyRate := float64(basic) / float64(workingDays*standardHoursPerDay)
	return statutory.RoundHalfUp(extraHours * hourlyRate * overtimeMultiplier)
}

// Commit turns the wizard's current state into a durable payroll run.
// The run row, every payslip with its line items, and the notification
// outbox event commit in one transaction; any failure rolls the whole
// thing back and the wizard stays at the confirm step.
func (s *service) Commit(ctx context.Context, companyID, actorID, wizardID string) (RunResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return RunResponse{}, payrollrunerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RunResponse{}, payrollrunerrors.ErrInvalidActorID
	}

	w, err := s.wizards.Get(ctx, companyID, wizardID)
	if err != nil {
		return RunResponse{}, err
	}
	if w.Step != StepConfirming {
		return RunResponse{}, payrollrunerrors.ErrWizardStep
	}
	if len(w.SelectedEmployeeIDs) == 0 {
		return RunResponse{}, payrollrunerrors.ErrNoEmployeesSelected
	}

	// Commit gate: the statutory profile must be complete before any
	// run exists for this company's period.
	profile, err := s.companies.GetStatutoryProfile(ctx, companyID)
	if err != nil {
		return RunResponse{}, err
	}
	if missing := profile.MissingFields(); len(missing) > 0 {
		return RunResponse{}, payrollrunerrors.ErrIncompleteCompanyProfile.WithDetails(missing)
	}

	periodStart, periodEnd := w.PeriodBounds()
	existing, err := s.repo.FindByPeriod(ctx, companyID, periodStart, periodEnd)
	if err != nil {
		return RunResponse{}, err
	}
	if existing != nil {
		return RunResponse{}, payrollrunerrors.ErrDuplicateRunForPeriod
	}

	// Figures are derived fresh at commit time; a preview shown to the
	// operator earlier is never trusted as input.
	slips, err := s.derivePayslips(ctx, w)
	if err != nil {
		return RunResponse{}, err
	}

	totals := Aggregate(slips)
	now := time.Now().UTC()

	run := &PayrollRun{
		ID:               uuid.New(),
		CompanyID:        companyUUID,
		PeriodStart:      periodStart,
		PeriodEnd:        periodEnd,
		PayDate:          *w.PayDate,
		Status:           StatusPendingApproval,
		EmployeeCount:    totals.EmployeeCount,
		TotalGross:       totals.TotalGross,
		TotalNet:         totals.TotalNet,
		TotalEPFEmployee: totals.TotalEPFEmployee,
		TotalEPFEmployer: totals.TotalEPFEmployer,
		TotalETF:         totals.TotalETF,
		TotalPAYE:        totals.TotalPAYE,
		CreatedBy:        actorUUID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	employeeIDs := make([]string, len(slips))
	for i := range slips {
		slips[i].ID = uuid.New()
		slips[i].PayrollRunID = run.ID
		slips[i].CreatedAt = now
		for j := range slips[i].LineItems {
			slips[i].LineItems[j].ID = uuid.New()
			slips[i].LineItems[j].PayslipID = slips[i].ID
			slips[i].LineItems[j].CompanyID = companyUUID
			slips[i].LineItems[j].CreatedAt = now
		}
		employeeIDs[i] = slips[i].EmployeeID.String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, run, slips); err != nil {
		s.logger.Error("commit payroll run persist failed",
			zap.String("request_id", rid),
			zap.String("run_id", run.ID.String()),
			zap.Error(err),
		)
		return RunResponse{}, mapRepositoryError(err)
	}

	event := events.PayrollRunCommittedEvent{
		EventType:    "payroll_run_committed",
		RequestID:    rid,
		PayrollRunID: run.ID.String(),
		CompanyID:    companyID,
		PeriodStart:  periodStart.Format("2006-01-02"),
		PeriodEnd:    periodEnd.Format("2006-01-02"),
		EmployeeIDs:  employeeIDs,
		RequestedBy:  actorID,
		OccurredAt:   now,
	}
	if s.outbox != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			return RunResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "payroll_run",
			AggregateID:   run.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PayrollRunCommittedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("commit payroll run outbox persist failed",
				zap.String("run_id", run.ID.String()),
				zap.Error(err),
			)
			return RunResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return RunResponse{}, mapRepositoryError(err)
	}

	// The wizard is finished; losing this write only leaves an expired
	// session behind, never an inconsistent run.
	if err := w.MarkCommitted(); err == nil {
		if err := s.wizards.Save(ctx, w); err != nil {
			s.logger.Warn("wizard finalize write failed",
				zap.String("wizard_id", w.ID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("payroll run committed",
		zap.String("request_id", rid),
		zap.String("run_id", run.ID.String()),
		zap.Int("employee_count", run.EmployeeCount),
	)

	return mapRunResponse(*run), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]RunResponse, error) {
	runs, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return mapRunListResponse(runs), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (RunDetailResponse, error) {
	run, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return RunDetailResponse{}, mapRepositoryError(err)
	}

	slips, err := s.repo.ListPayslips(ctx, companyID, id)
	if err != nil {
		return RunDetailResponse{}, err
	}

	return RunDetailResponse{
		RunResponse: mapRunResponse(*run),
		Payslips:    slips,
	}, nil
}

// GetPayslip also resolves the company display name so callers can
// render the slip without a second lookup.
func (s *service) GetPayslip(ctx context.Context, companyID, runID, payslipID string) (*payslip.PaySlip, string, error) {
	slip, err := s.repo.FindPayslip(ctx, companyID, runID, payslipID)
	if err != nil {
		return nil, "", mapRepositoryError(err)
	}

	var companyName string
	if comp, err := s.companies.FindByID(ctx, companyID); err == nil {
		companyName = comp.Name
	}
	return slip, companyName, nil
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (RunResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RunResponse{}, payrollrunerrors.ErrInvalidActorID
	}

	run, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return RunResponse{}, mapRepositoryError(err)
	}
	if !CanTransition(run.Status, StatusApproved) {
		return RunResponse{}, payrollrunerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	run.Status = StatusApproved
	run.ApprovedBy = &actorUUID
	run.ApprovedAt = &now

	if err := s.repo.UpdateStatus(ctx, run); err != nil {
		return RunResponse{}, err
	}

	s.logger.Info("payroll run approved",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("run_id", id),
	)
	return mapRunResponse(*run), nil
}

func (s *service) MarkAsPaid(ctx context.Context, companyID, actorID, id string) (RunResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return RunResponse{}, payrollrunerrors.ErrInvalidActorID
	}

	run, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return RunResponse{}, mapRepositoryError(err)
	}
	if !CanTransition(run.Status, StatusPaid) {
		return RunResponse{}, payrollrunerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	run.Status = StatusPaid
	run.PaidAt = &now

	if err := s.repo.UpdateStatus(ctx, run); err != nil {
		return RunResponse{}, err
	}

	s.logger.Info("payroll run marked paid",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("run_id", id),
	)
	return mapRunResponse(*run), nil
}
