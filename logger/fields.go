package logger

// Field names shared by every component, so log lines stay greppable
// across the loader, the script environment, and the CLI.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldTraceID    = "trace_id"
	FieldSpanID     = "span_id"
	FieldPackage    = "package"
	FieldVersion    = "version"
	FieldPath       = "path"
	FieldProvider   = "provider"
	FieldURL        = "url"
	FieldAttempt    = "attempt"
	FieldCandidates = "candidates"
	FieldTimeout    = "timeout"
	FieldCode       = "code"
	FieldError      = "error"
)

// Fields builds a field map from alternating key-value pairs. Keys that
// are not strings and a trailing key without a value are dropped.
//
//	log.Info("script loaded", logger.Fields(
//		logger.FieldProvider, "unpkg",
//		logger.FieldURL, url,
//	))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}
