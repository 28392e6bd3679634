package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations. Values are
// stored as JSON; Get decodes into dest and returns ErrCacheMiss when the
// key is absent or expired.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// SpreadsheetText is the text and row matrix read from a spreadsheet
type SpreadsheetText struct {
	Text string     `json:"text"`
	Rows [][]string `json:"rows"`
}

// DocumentText is the text read from a document, one entry per page
type DocumentText struct {
	Text  string   `json:"text"`
	Pages []string `json:"pages"`
}

// SpreadsheetDecoder decodes spreadsheet payloads. ext is the lowercase
// file extension without the dot.
type SpreadsheetDecoder interface {
	DecodeSpreadsheet(ctx context.Context, data []byte, ext string) (SpreadsheetText, error)
}

// DocumentDecoder decodes document payloads
type DocumentDecoder interface {
	DecodeDocument(ctx context.Context, data []byte, ext string) (DocumentText, error)
}
