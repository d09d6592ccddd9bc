package api

import (
	"github.com/segmentio/ksuid"

	"github.com/tmarsden/binq/pkg/archive"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port            int
	Bind            string
	APIKey          string
	DataDir         string
	MaxSnapshotSize int64 // Largest framed snapshot accepted on upload, in bytes
}

// SnapshotArchive defines the archive operations the API needs
type SnapshotArchive interface {
	Put(name string, framed []byte) (ksuid.KSUID, error)
	Latest(name string) ([]byte, archive.Revision, error)
	Get(name string, id ksuid.KSUID) ([]byte, error)
	Revisions(name string) ([]archive.Revision, error)
	Names() ([]string, error)
	Delete(name string) error
}
