package devbackend

// Envelope status codes shared with the production backend.
const (
	CodeSuccess            = "0000"
	CodeUnauthorized       = "1001"
	CodeForbidden          = "1002"
	CodeInvalidCredentials = "1003"
	CodeValidation         = "2001"
	CodeDuplicate          = "2004"
	CodeShopNotFound       = "3001"
	CodeUserNotFound       = "3002"
	CodeProductNotFound    = "3006"
	CodeGeneral            = "9999"
)
