package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// ============================================
// Standard Tracing Fields (Context level)
// These fields are propagated through the call chain
// ============================================

const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldJobID is the catalog ingestion job ID
	FieldJobID = "job_id"

	// FieldFragranceID is the catalog fragrance ID a log line refers to
	FieldFragranceID = "fragrance_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldSource is the catalog data source identifier
	FieldSource = "source"

	// FieldUserID is the acting user ID, when the request carries one
	FieldUserID = "user_id"
)

// ============================================
// Standard Metric Fields (Entry level)
// These fields are used for aggregation and alerting
// ============================================

const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"

	// FieldSize is the data size in bytes
	FieldSize = "size"

	// FieldStatus is the operation status
	FieldStatus = "status"
)
