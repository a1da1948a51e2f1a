package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrSessionExpired      = errors.New("session expired")
	ErrInvalidAPIKey       = errors.New("llm api key is invalid or lacks permission")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrMalformedDocument   = errors.New("document is missing a required section")
	ErrCipherFailure       = errors.New("session cipher failure")
	ErrUpstreamService     = errors.New("upstream llm service error")
)
