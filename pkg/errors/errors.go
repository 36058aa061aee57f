package errors

import "fmt"

// Error codes
const (
	CodeBotError   = "BOT_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeStorage    = "STORAGE_ERROR"
	CodePlaylist   = "PLAYLIST_ERROR"
	CodeCache      = "CACHE_ERROR"
)

type BotError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *BotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *BotError) Unwrap() error {
	return e.Cause
}

func NewBotError(message, code string, statusCode int, context map[string]any) *BotError {
	return &BotError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *BotError) WithCause(cause error) *BotError {
	e.Cause = cause
	return e
}

type ValidationError struct {
	*BotError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		BotError: &BotError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type StorageError struct {
	*BotError
	Operation string
	Path      string
}

func NewStorageError(message, operation, path string, cause error) *StorageError {
	return &StorageError{
		BotError: &BotError{
			Message:    message,
			Code:       CodeStorage,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"path":      path,
			},
			Cause: cause,
		},
		Operation: operation,
		Path:      path,
	}
}

// PlaylistErrorKind distinguishes provider failures that get different
// user-facing messages but identical retry policy (none).
type PlaylistErrorKind int

const (
	PlaylistNotFound PlaylistErrorKind = iota
	PlaylistForbidden
	PlaylistQuotaExceeded
	PlaylistTransient
)

type PlaylistError struct {
	*BotError
	Kind       PlaylistErrorKind
	PlaylistID string
}

func NewPlaylistError(message string, kind PlaylistErrorKind, playlistID string, cause error) *PlaylistError {
	return &PlaylistError{
		BotError: &BotError{
			Message:    message,
			Code:       CodePlaylist,
			StatusCode: 502,
			Context: map[string]any{
				"kind":       int(kind),
				"playlistId": playlistID,
			},
			Cause: cause,
		},
		Kind:       kind,
		PlaylistID: playlistID,
	}
}

type CacheError struct {
	*BotError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		BotError: &BotError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}
