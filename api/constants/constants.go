package constants

// Common error messages
const (
	ErrInvalidSession     = "invalid user_id or session"
	ErrUserIDRequired     = "user_id required"
	ErrInvalidJSON        = "invalid json or missing fields"
	ErrInvalidRequestBody = "Invalid request body"
	ErrMethodNotAllowed   = "Method Not Allowed"
	ErrDB                 = "DB error"
	ErrForbiddenRole      = "Your role does not permit this action"
	ErrPleaseLogin        = "Please login to continue."
)

// Content Types
const (
	ContentTypeHeader = "Content-Type"
	ContentTypeJSON   = "application/json"
	ContentTypeCSV    = "text/csv"
	ContentTypeXLSX   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Date formats
const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
	DateFormatAlt  = "02-01-2006"
)

// Validation statuses
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)
