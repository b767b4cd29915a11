// Package storage provides the replay blob store consumed by the
// engine. Blobs are opaque bytes keyed by name; the engine decodes
// them, storage never inspects them.
package storage

// Store is the blob storage collaborator.
type Store interface {
	// ReadBlob returns the raw bytes for a named replay.
	ReadBlob(name string) ([]byte, error)
	// ListNames returns the available replay names.
	ListNames() ([]string, error)
	// DeleteBlob removes a named replay.
	DeleteBlob(name string) error
}
