package project

import (
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/RoomFit/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string              `json:"version"`
	CreatedAt string              `json:"created_at"`
	Config    model.AppConfig     `json:"config"`
	Templates model.TemplateStore `json:"templates"`
}

// ExportAllData exports the app config and room templates to a single JSON
// file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, templates model.TemplateStore) error {
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Templates: templates,
	}
	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}

// ImportAllData reads a backup file. The config and templates are checked the
// same way LoadAppConfig and LoadTemplates check them; applying them is left
// to the caller.
func ImportAllData(importPath string) (BackupData, error) {
	backup := BackupData{Config: model.DefaultAppConfig()}
	found, err := readJSON(importPath, &backup)
	if err != nil {
		return BackupData{}, fmt.Errorf("reading backup: %w", err)
	}
	if !found {
		return BackupData{}, fmt.Errorf("reading backup: %w", os.ErrNotExist)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if err := backup.Config.Validate(); err != nil {
		return BackupData{}, fmt.Errorf("backup config: %w", err)
	}
	if err := validateTemplates(backup.Templates); err != nil {
		return BackupData{}, fmt.Errorf("backup templates: %w", err)
	}
	if backup.Config.RecentLayouts == nil {
		backup.Config.RecentLayouts = []string{}
	}
	if backup.Templates.Templates == nil {
		backup.Templates.Templates = []model.RoomTemplate{}
	}
	return backup, nil
}
