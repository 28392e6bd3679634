package domain

import "errors"

var (
	// ErrUnsupportedInput is returned when a file type or MIME type is not recognized
	ErrUnsupportedInput = errors.New("unsupported input type")

	// ErrCorruptFile is returned when a spreadsheet or document cannot be decoded
	ErrCorruptFile = errors.New("file could not be decoded")

	// ErrInsufficientText is returned when recovered text is too short to be useful
	ErrInsufficientText = errors.New("insufficient text recovered from file")

	// ErrRecognitionFailed is returned when a recognition capability fails
	ErrRecognitionFailed = errors.New("recognition capability failed")

	// ErrNoWorkoutFound is returned when a vision response reports no workout in the image
	ErrNoWorkoutFound = errors.New("no workout found in image")

	// ErrInvalidVisionResponse is returned when a vision response cannot be decoded or validated
	ErrInvalidVisionResponse = errors.New("invalid vision response")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
