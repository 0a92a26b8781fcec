package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldDispatchID = "dispatch_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldPipeline   = "pipeline"
	FieldIssue      = "issue"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldToggle     = "toggle"
	FieldRangeStart = "range_start"
	FieldRangeEnd   = "range_end"
	FieldRecordID   = "record_id"
	FieldCategory   = "category"
	FieldAmount     = "amount"
	FieldBackend    = "backend"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentWeb       = "web"
	ComponentStore     = "store"
	ComponentDashboard = "dashboard"
	ComponentRender    = "render"
	ComponentSelection = "selection"
)

// Operations defines standard operation names
const (
	OpList        = "list"
	OpCreate      = "create"
	OpDelete      = "delete"
	OpRangeStats  = "range_stats"
	OpMonthStats  = "month_summary"
	OpYearStats   = "year_summary"
	OpDispatch    = "dispatch"
	OpRender      = "render"
	OpStartup     = "startup"
	OpShutdown    = "shutdown"
)

// Pipelines defines the refresh pipeline names used in log records
const (
	PipelineTable     = "table"
	PipelineMonth     = "month"
	PipelineYear      = "year"
	PipelineBreakdown = "breakdown"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeNetwork       = "network_error"
	ErrorTypeNotFound      = "not_found_error"
	ErrorTypeRemote        = "remote_error"
	ErrorTypeInternal      = "internal_error"
)
