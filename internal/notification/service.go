package notification

import (
	"context"
	"fmt"

	"go-payroll/internal/company"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/payrollrun"
	"go-payroll/internal/payslip"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service emails every payslip of a committed run to its employee and
// records a delivery row per recipient. Delivery is best-effort: a
// failed or skipped recipient is logged and never surfaces back to the
// payroll run, whose status is owned by the approval chain alone.
type Service struct {
	runs       payrollrun.Repository
	employees  employee.Repository
	companies  company.Repository
	deliveries DeliveryRepository
	notifier   Notifier
	logger     *zap.Logger
}

func NewService(
	runs payrollrun.Repository,
	employees employee.Repository,
	companies company.Repository,
	deliveries DeliveryRepository,
	notifier Notifier,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.L()
	}
	return &Service{
		runs:       runs,
		employees:  employees,
		companies:  companies,
		deliveries: deliveries,
		notifier:   notifier,
		logger:     logger.Named("notification.service"),
	}
}

// NotifyRunCommitted handles one payroll.run.committed event. Load
// failures return an error so the consumer can redeliver; per-recipient
// send failures do not. An event carrying employee ids scopes delivery
// to those employees; an empty list means the whole run.
func (s *Service) NotifyRunCommitted(ctx context.Context, event events.PayrollRunCommittedEvent) error {
	slips, err := s.runs.ListPayslips(ctx, event.CompanyID, event.PayrollRunID)
	if err != nil {
		return err
	}
	slips = scopeToEmployees(slips, event.EmployeeIDs)
	if len(slips) == 0 {
		s.logger.Warn("run committed event with no payslips",
			zap.String("payroll_run_id", event.PayrollRunID),
		)
		return nil
	}

	comp, err := s.companies.FindByID(ctx, event.CompanyID)
	if err != nil {
		return err
	}

	emails, err := s.employeeEmails(ctx, event.CompanyID, slips)
	if err != nil {
		return err
	}

	for i := range slips {
		s.deliverOne(ctx, &slips[i], comp.Name, emails[slips[i].EmployeeID.String()])
	}

	return nil
}

func scopeToEmployees(slips []payslip.PaySlip, employeeIDs []string) []payslip.PaySlip {
	if len(employeeIDs) == 0 {
		return slips
	}

	wanted := make(map[string]struct{}, len(employeeIDs))
	for _, id := range employeeIDs {
		wanted[id] = struct{}{}
	}

	scoped := make([]payslip.PaySlip, 0, len(employeeIDs))
	for _, slip := range slips {
		if _, ok := wanted[slip.EmployeeID.String()]; ok {
			scoped = append(scoped, slip)
		}
	}
	return scoped
}

func (s *Service) employeeEmails(ctx context.Context, companyID string, slips []payslip.PaySlip) (map[string]string, error) {
	ids := make([]string, len(slips))
	for i, slip := range slips {
		ids[i] = slip.EmployeeID.String()
	}

	employees, err := s.employees.FindByIDs(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}

	emails := make(map[string]string, len(employees))
	for _, e := range employees {
		emails[e.ID.String()] = e.Email
	}
	return emails, nil
}

func (s *Service) deliverOne(ctx context.Context, slip *payslip.PaySlip, companyName, email string) {
	log := &DeliveryLog{
		ID:           uuid.New(),
		CompanyID:    slip.CompanyID,
		PayrollRunID: slip.PayrollRunID,
		PayslipID:    slip.ID,
		EmployeeID:   slip.EmployeeID,
		Recipient:    email,
	}

	switch {
	case email == "":
		log.Status = DeliveryStatusSkipped
		s.logger.Warn("payslip delivery skipped, employee has no email",
			zap.String("employee_id", slip.EmployeeID.String()),
		)

	default:
		if err := s.sendPayslip(ctx, slip, companyName, email); err != nil {
			reason := err.Error()
			log.Status = DeliveryStatusFailed
			log.Error = &reason
			s.logger.Error("payslip delivery failed",
				zap.String("employee_id", slip.EmployeeID.String()),
				zap.Error(err),
			)
		} else {
			log.Status = DeliveryStatusSent
		}
	}

	if err := s.deliveries.Create(ctx, log); err != nil {
		s.logger.Error("write delivery log failed",
			zap.String("payslip_id", slip.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *Service) sendPayslip(ctx context.Context, slip *payslip.PaySlip, companyName, email string) error {
	pdf, err := payslip.RenderPDF(slip, companyName)
	if err != nil {
		return err
	}

	period := slip.PeriodStart.Format("January 2006")
	return s.notifier.Send(ctx, Message{
		To:      email,
		Subject: fmt.Sprintf("Payslip for %s", period),
		Body: fmt.Sprintf(
			"Dear %s,\r\n\r\nYour payslip for %s is attached.\r\n\r\n%s",
			slip.EmployeeName, period, companyName,
		),
		Attachment:     pdf,
		AttachmentName: fmt.Sprintf("payslip-%s-%s.pdf", slip.EmployeeNumber, slip.PeriodStart.Format("2006-01")),
	})
}
