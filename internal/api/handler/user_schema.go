package handler

import "time"

// APIError is the error envelope returned on all 4xx/5xx responses that
// carry a body. ValidationErrors is only present for rejected signups.
type APIError struct {
	Timestamp        int64             `json:"timestamp"`
	Status           int               `json:"status"`
	Message          string            `json:"message"`
	URL              string            `json:"url"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

// NewAPIError builds an envelope stamped with the current time.
func NewAPIError(status int, message, url string) APIError {
	return APIError{
		Timestamp: time.Now().UnixMilli(),
		Status:    status,
		Message:   message,
		URL:       url,
	}
}

// --- Request / Response types ---

// signupRequest uses pointers for the required fields so an absent JSON
// field reaches the validation rules as nil rather than "".
type signupRequest struct {
	Username    *string `json:"username"`
	DisplayName *string `json:"displayName"`
	Password    *string `json:"password"`
	Image       string  `json:"image,omitempty"`
}

// genericResponse wraps a human-readable success message.
type genericResponse struct {
	Message string `json:"message"`
}

// userResponse is the sanitized projection of a user safe for external
// exposure. It deliberately has no password field of any kind.
type userResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Image       string `json:"image"`
}

// userPageResponse mirrors the pagination metadata computed by the service.
type userPageResponse struct {
	Content          []userResponse `json:"content"`
	Page             int            `json:"page"`
	Size             int            `json:"size"`
	TotalElements    int64          `json:"totalElements"`
	TotalPages       int            `json:"totalPages"`
	NumberOfElements int            `json:"numberOfElements"`
}
