package models

// Response codes.
const (
	// Success
	CodeSuccess = 0

	// Client errors (1000-1999)
	CodeInvalidParams   = 1000
	CodeMissingParams   = 1001
	CodeUserNotFound    = 1002
	CodeNoRecommendData = 1004

	// Server errors (2000-2999)
	CodeServerError   = 2000
	CodeDatabaseError = 2001
	CodeSteamAPIError = 2005
	CodeLLMError      = 2006
)

// Messages for each response code.
var CodeMessages = map[int]string{
	CodeSuccess:         "success",
	CodeInvalidParams:   "invalid parameters",
	CodeMissingParams:   "missing required parameters",
	CodeUserNotFound:    "user not found",
	CodeNoRecommendData: "no recommendation data",
	CodeServerError:     "internal server error",
	CodeDatabaseError:   "database error",
	CodeSteamAPIError:   "steam api error",
	CodeLLMError:        "language model error",
}

// APIResponse is the common envelope for every endpoint.
type APIResponse struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// NewSuccessResponse builds a success envelope.
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Code:    CodeSuccess,
		Message: CodeMessages[CodeSuccess],
		Data:    data,
	}
}

// NewErrorResponse builds an error envelope with the code's standard message.
func NewErrorResponse(code int, data interface{}) APIResponse {
	message, exists := CodeMessages[code]
	if !exists {
		message = "unknown error"
	}
	return APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// NewCustomErrorResponse builds an error envelope with a custom message.
func NewCustomErrorResponse(code int, message string, data interface{}) APIResponse {
	return APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}
