package logging

// Standardized field names for structured logging. Keeping the keys in one
// place makes log output consistent and easy to filter.
const (
	FieldRequestID = "request_id"
	FieldFilename  = "filename"
	FieldBank      = "bank"
	FieldPage      = "page"
	FieldRows      = "rows"
	FieldDeferred  = "deferred"
	FieldDropped   = "dropped"
	FieldChunk     = "chunk"
	FieldModel     = "model"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldAddr      = "addr"
)
