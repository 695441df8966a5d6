package events

import "time"

const PayrollRunCommittedTopic = "payroll.run.committed.v1"

type PayrollRunCommittedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	PayrollRunID string    `json:"payroll_run_id"`
	CompanyID    string    `json:"company_id"`
	PeriodStart  string    `json:"period_start"`
	PeriodEnd    string    `json:"period_end"`
	EmployeeIDs  []string  `json:"employee_ids"`
	RequestedBy  string    `json:"requested_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
