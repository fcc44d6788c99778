// Package ticketfile reads service desk dashboard exports from disk.
package ticketfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
)

// Load reads and validates an export document.
// Any failure is fatal for an ingestion run and wraps domain.ErrInvalidInput.
func Load(path string) (*domain.TicketExport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrInvalidInput, path, err)
	}
	return Parse(data)
}

// Parse decodes an export document from UTF-8 JSON.
func Parse(data []byte) (*domain.TicketExport, error) {
	// Exports saved from Windows tools may carry a BOM.
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var export domain.TicketExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("%w: decoding export: %w", domain.ErrInvalidInput, err)
	}
	if err := export.Validate(); err != nil {
		return nil, err
	}
	return &export, nil
}
