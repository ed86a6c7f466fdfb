package alerting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"vulcan-monitor-go/internal/models"
)

// Store persists alert records, one JSON file per alert. Records are
// append-only and independently readable; nothing references across files.
type Store struct {
	dir string
}

// NewStore creates the alerts directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create alerts directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory records are written to.
func (s *Store) Dir() string {
	return s.dir
}

// NewRecord builds an alert record with a timestamp-derived identifier.
// The uuid suffix keeps ids unique when two cameras alert in the same
// millisecond.
func NewRecord(result *models.DetectionResult, decision models.RouteDecision) *models.AlertRecord {
	return &models.AlertRecord{
		ID:       fmt.Sprintf("alert_%s_%s", result.Timestamp.UTC().Format("20060102_150405.000"), uuid.NewString()[:8]),
		Decision: decision,
		Result:   *result,
		SavedAt:  time.Now(),
	}
}

// Save writes one record durably. The file name is the record id.
func (s *Store) Save(record *models.AlertRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal alert record %s: %w", record.ID, err)
	}

	path := filepath.Join(s.dir, record.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write alert record %s: %w", record.ID, err)
	}
	return nil
}
