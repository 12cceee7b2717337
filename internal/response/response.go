package response

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/c5551051011/insidelab-frontend/internal/middleware"
	"github.com/c5551051011/insidelab-frontend/internal/services"

	"go.uber.org/zap"
)

// ===============================
// RESPONSE CONFIGURATION
// ===============================

// Config holds configuration for the response system
type Config struct {
	PrettyJSON       bool   `json:"pretty_json"`
	IncludeRequestID bool   `json:"include_request_id"`
	IncludeTimestamp bool   `json:"include_timestamp"`
	APIVersion       string `json:"api_version"`

	// MaskInternalErrors hides internal error messages from clients
	MaskInternalErrors bool `json:"mask_internal_errors"`
}

// DefaultConfig returns production-ready response configuration
func DefaultConfig() *Config {
	return &Config{
		PrettyJSON:         false,
		IncludeRequestID:   true,
		IncludeTimestamp:   true,
		APIVersion:         "v1",
		MaskInternalErrors: true,
	}
}

// ===============================
// RESPONSE TYPES
// ===============================

// APIResponse represents a standardized API response
type APIResponse struct {
	Success   bool          `json:"success"`
	Data      interface{}   `json:"data,omitempty"`
	Error     *ErrorDetail  `json:"error,omitempty"`
	Meta      *ResponseMeta `json:"meta,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
	Timestamp int64         `json:"timestamp,omitempty"`
	Version   string        `json:"version,omitempty"`
}

// ErrorDetail represents error information in API responses
type ErrorDetail struct {
	Type    string       `json:"type"`
	Message string       `json:"message"`
	Code    string       `json:"code,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError represents field-specific validation errors
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ResponseMeta contains metadata about the response
type ResponseMeta struct {
	Pagination *PaginationMeta        `json:"pagination,omitempty"`
	Degraded   bool                   `json:"degraded,omitempty"`
	Extra      map[string]interface{} `json:"extra,omitempty"`
}

// PaginationMeta contains pagination information
type PaginationMeta struct {
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	Total    int  `json:"total"`
	HasMore  bool `json:"has_more"`
}

// ===============================
// RESPONSE BUILDER
// ===============================

// Builder helps construct standardized responses
type Builder struct {
	config *Config
	logger *zap.Logger
}

// NewBuilder creates a new response builder
func NewBuilder(config *Config, logger *zap.Logger) *Builder {
	if config == nil {
		config = DefaultConfig()
	}
	return &Builder{config: config, logger: logger}
}

// Success creates a successful API response
func (b *Builder) Success(ctx context.Context, data interface{}) *APIResponse {
	return &APIResponse{
		Success:   true,
		Data:      data,
		RequestID: b.getRequestID(ctx),
		Timestamp: b.getTimestamp(),
		Version:   b.config.APIVersion,
	}
}

// SuccessWithMeta creates a successful API response with metadata
func (b *Builder) SuccessWithMeta(ctx context.Context, data interface{}, meta *ResponseMeta) *APIResponse {
	response := b.Success(ctx, data)
	response.Meta = meta
	return response
}

// Error creates an error response from a service error
func (b *Builder) Error(ctx context.Context, err error) *APIResponse {
	detail := b.convertError(err)

	response := &APIResponse{
		Success:   false,
		Error:     detail,
		RequestID: b.getRequestID(ctx),
		Timestamp: b.getTimestamp(),
		Version:   b.config.APIVersion,
	}
	b.logError(ctx, err, detail)
	return response
}

// ValidationError creates a validation error response from a
// field-keyed message map, the shape model validation produces.
func (b *Builder) ValidationError(ctx context.Context, message string, fields map[string]string) *APIResponse {
	return &APIResponse{
		Success: false,
		Error: &ErrorDetail{
			Type:    "VALIDATION_ERROR",
			Message: message,
			Fields:  fieldErrors(fields),
		},
		RequestID: b.getRequestID(ctx),
		Timestamp: b.getTimestamp(),
		Version:   b.config.APIVersion,
	}
}

// ===============================
// HTTP RESPONSE WRITERS
// ===============================

// WriteJSON writes a JSON response with appropriate headers
func (b *Builder) WriteJSON(w http.ResponseWriter, r *http.Request, response *APIResponse, statusCode int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	encoder := json.NewEncoder(w)
	if b.config.PrettyJSON {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(response); err != nil {
		b.logger.Error("Failed to encode JSON response",
			zap.Error(err),
			zap.String("request_id", b.getRequestID(r.Context())),
		)
	}
}

// WriteSuccess writes a successful JSON response
func (b *Builder) WriteSuccess(w http.ResponseWriter, r *http.Request, data interface{}) {
	b.WriteJSON(w, r, b.Success(r.Context(), data), http.StatusOK)
}

// WriteCreated writes a successful creation response
func (b *Builder) WriteCreated(w http.ResponseWriter, r *http.Request, data interface{}) {
	b.WriteJSON(w, r, b.Success(r.Context(), data), http.StatusCreated)
}

// WriteError writes an error response with the error's status code
func (b *Builder) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	b.WriteJSON(w, r, b.Error(r.Context(), err), StatusCodeOf(err))
}

// WriteValidationError writes a 400 with field-level errors
func (b *Builder) WriteValidationError(w http.ResponseWriter, r *http.Request, message string, fields map[string]string) {
	b.WriteJSON(w, r, b.ValidationError(r.Context(), message, fields), http.StatusBadRequest)
}

// WritePaginated writes a page of results with pagination metadata
func (b *Builder) WritePaginated(w http.ResponseWriter, r *http.Request, data interface{}, page, pageSize, total int, hasMore, degraded bool) {
	meta := &ResponseMeta{
		Pagination: &PaginationMeta{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
			HasMore:  hasMore,
		},
		Degraded: degraded,
	}
	b.WriteJSON(w, r, b.SuccessWithMeta(r.Context(), data, meta), http.StatusOK)
}

// ===============================
// UTILITY METHODS
// ===============================

// StatusCodeOf maps an error to its HTTP status code.
func StatusCodeOf(err error) int {
	if serviceErr, ok := err.(*services.ServiceError); ok {
		return serviceErr.GetStatusCode()
	}
	return http.StatusInternalServerError
}

func (b *Builder) convertError(err error) *ErrorDetail {
	if err == nil {
		return nil
	}

	if serviceErr, ok := err.(*services.ServiceError); ok {
		return &ErrorDetail{
			Type:    serviceErr.Type,
			Message: serviceErr.Message,
			Code:    serviceErr.Code,
			Fields:  fieldErrors(serviceErr.Fields),
		}
	}

	message := "An unexpected error occurred. Please try again."
	if !b.config.MaskInternalErrors {
		message = err.Error()
	}
	return &ErrorDetail{Type: "INTERNAL_ERROR", Message: message}
}

func fieldErrors(fields map[string]string) []FieldError {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]FieldError, 0, len(names))
	for _, name := range names {
		result = append(result, FieldError{Field: name, Message: fields[name]})
	}
	return result
}

func (b *Builder) logError(ctx context.Context, err error, detail *ErrorDetail) {
	logger := middleware.LoggerFromContext(ctx, b.logger)
	if detail.Type == "INTERNAL_ERROR" || detail.Type == "NETWORK_ERROR" {
		logger.Error("Request failed", zap.String("error_type", detail.Type), zap.Error(err))
		return
	}
	logger.Debug("Request rejected", zap.String("error_type", detail.Type), zap.String("message", detail.Message))
}

func (b *Builder) getRequestID(ctx context.Context) string {
	if !b.config.IncludeRequestID {
		return ""
	}
	return middleware.RequestIDFromContext(ctx)
}

func (b *Builder) getTimestamp() int64 {
	if !b.config.IncludeTimestamp {
		return 0
	}
	return time.Now().Unix()
}
