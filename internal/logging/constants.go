package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile      = "file_path"
	FieldParser    = "parser"
	FieldAccount   = "account"
	FieldDataUser  = "data_user"
	FieldKey       = "storage_key"
	FieldBackend   = "backend"
	FieldCategory  = "category"
	FieldReason    = "reason"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldCount     = "count"
	FieldRow       = "row"
	FieldImported  = "imported"
	FieldSkipped   = "skipped_duplicate"
	FieldRejected  = "rejected"
	FieldUpdated   = "updated"
	FieldDelimiter = "delimiter"
	FieldInputFile = "input_file"
	FieldOutput    = "output_file"
)
