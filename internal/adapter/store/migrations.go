package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"freq/config"
	"go.etcd.io/bbolt"
)

// CurrentSchemaVersion is the current schema version.
// Increment this when making breaking changes to the storage format.
const CurrentSchemaVersion = 1

var (
	keySchemaVersion = []byte("schema_version")
	keyConfigHash    = []byte("config_hash")
)

// SchemaInfo stores schema version and configuration hash.
type SchemaInfo struct {
	Version    int    `json:"version"`
	ConfigHash string `json:"config_hash"`
}

// GetSchemaInfo retrieves the current schema info from the database.
func (s *BoltStore) GetSchemaInfo() (*SchemaInfo, error) {
	var info SchemaInfo
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMeta)
		if v := b.Get(keySchemaVersion); v != nil {
			if err := json.Unmarshal(v, &info.Version); err != nil {
				return fmt.Errorf("corrupt schema version: %w", err)
			}
		}
		if v := b.Get(keyConfigHash); v != nil {
			info.ConfigHash = string(v)
		}
		return nil
	})
	return &info, err
}

// SetSchemaInfo stores the schema info in the database.
func (s *BoltStore) SetSchemaInfo(info *SchemaInfo) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMeta)

		versionData, err := json.Marshal(info.Version)
		if err != nil {
			return err
		}
		if err := b.Put(keySchemaVersion, versionData); err != nil {
			return err
		}

		return b.Put(keyConfigHash, []byte(info.ConfigHash))
	})
}

// ComputeConfigHash hashes the configuration that affects report bytes.
// A different hash means earlier outputs can no longer be trusted.
func ComputeConfigHash(cfg *config.Config) string {
	relevant := struct {
		Lowercase       bool   `json:"lowercase"`
		Apostrophes     bool   `json:"apostrophes"`
		Normalize       bool   `json:"normalize"`
		RemoveStopwords bool   `json:"remove_stopwords"`
		StopwordsLang   string `json:"stopwords_lang,omitempty"`
		Format          string `json:"format"`
	}{
		Lowercase:       cfg.Count.Lowercase,
		Apostrophes:     cfg.Count.Apostrophes,
		Normalize:       cfg.Count.Normalize,
		RemoveStopwords: cfg.Count.RemoveStopwords,
		Format:          cfg.Report.Format,
	}
	if cfg.Count.RemoveStopwords {
		relevant.StopwordsLang = cfg.Count.StopwordsLang
	}

	data, _ := json.Marshal(relevant)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}

// MigrationResult describes the result of a migration check.
type MigrationResult struct {
	NeedsMigration  bool
	NeedsInvalidate bool
	OldVersion      int
	NewVersion      int
	Reason          string
}

// CheckMigration checks whether the schema or the counting config changed.
func (s *BoltStore) CheckMigration(cfg *config.Config) (*MigrationResult, error) {
	info, err := s.GetSchemaInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to get schema info: %w", err)
	}

	result := &MigrationResult{
		OldVersion: info.Version,
		NewVersion: CurrentSchemaVersion,
	}

	switch {
	case info.Version == 0:
		result.NeedsMigration = true
		result.Reason = "initializing schema version"
	case info.Version < CurrentSchemaVersion:
		result.NeedsMigration = true
		result.Reason = fmt.Sprintf("schema upgrade from v%d to v%d", info.Version, CurrentSchemaVersion)
	case info.Version > CurrentSchemaVersion:
		result.NeedsInvalidate = true
		result.Reason = fmt.Sprintf("history created by newer version (v%d > v%d)", info.Version, CurrentSchemaVersion)
		return result, nil
	}

	if info.ConfigHash != "" && info.ConfigHash != ComputeConfigHash(cfg) {
		result.NeedsInvalidate = true
		result.Reason = "counting configuration changed"
	}

	return result, nil
}

// Migrate brings the schema up to date and records the config hash.
func (s *BoltStore) Migrate(cfg *config.Config) error {
	info, err := s.GetSchemaInfo()
	if err != nil {
		return err
	}

	// No version-specific steps exist yet; v0 databases only lack meta keys.
	// Records written by a newer schema cannot be read back reliably.
	if info.Version > CurrentSchemaVersion {
		if err := s.Clear(); err != nil {
			return fmt.Errorf("failed to clear newer history: %w", err)
		}
	}

	return s.SetSchemaInfo(&SchemaInfo{
		Version:    CurrentSchemaVersion,
		ConfigHash: ComputeConfigHash(cfg),
	})
}
