package store

import (
	"fmt"
	"time"

	"moneyboard/internal/log"
)

// BackendType selects which Store implementation serves the dashboard.
type BackendType string

const (
	// HTTPBackend talks to the external record service.
	HTTPBackend BackendType = "http"
	// MemoryBackend runs against an empty in-process store.
	MemoryBackend BackendType = "memory"
)

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case HTTPBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// Config holds configuration for store creation.
type Config struct {
	Type BackendType

	// HTTP backend specific
	BaseURL           string
	Timeout           time.Duration
	SummaryTTL        time.Duration
	RequestsPerSecond float64
}

// New creates the configured Store.
func New(cfg Config, logger *log.Logger) (Store, error) {
	switch cfg.Type {
	case HTTPBackend:
		s, err := NewHTTPStore(HTTPConfig{
			BaseURL:           cfg.BaseURL,
			Timeout:           cfg.Timeout,
			SummaryTTL:        cfg.SummaryTTL,
			RequestsPerSecond: cfg.RequestsPerSecond,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize http store: %w", err)
		}
		logger.Info("Initialized http store", log.FieldBackend, cfg.Type.String())
		return s, nil
	case MemoryBackend:
		logger.Info("Initialized memory store", log.FieldBackend, cfg.Type.String())
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Type)
	}
}
