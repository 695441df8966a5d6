package domain

// EnforceRequest is one authorization question: may this employee of
// this company perform action on resource.
type EnforceRequest struct {
	EmployeeID string
	CompanyID  string
	Resource   string
	Action     string
}
