package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records operational events that matter beyond debugging,
// such as process lifecycle changes.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
