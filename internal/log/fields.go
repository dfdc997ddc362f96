package log

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldTraceID   = "trace_id"
	FieldUserID    = "user_id"
	FieldStep      = "step"
	FieldKind      = "kind"
	FieldSheet     = "sheet"
	FieldPeriod    = "period"
	FieldAmount    = "amount"
	FieldCategory  = "category"
	FieldAccount   = "account"
	FieldError     = "error"
	FieldSkipped   = "skipped_rows"
)

// Components defines standard component names.
const (
	ComponentApp       = "app"
	ComponentBot       = "bot"
	ComponentSession   = "session"
	ComponentCatalog   = "catalog"
	ComponentLedger    = "ledger"
	ComponentSheets    = "sheets"
	ComponentTelegram  = "telegram"
	ComponentAMQP      = "amqp"
	ComponentScheduler = "scheduler"
	ComponentWorker    = "worker"
)
