package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vendor-comparison/utils"
)

// sanitizeFilename strips characters that break Content-Disposition headers
// or filesystem paths (sanitize and support UTF-8)
func sanitizeFilename(name string) string {
	safe := strings.TrimSpace(name)
	safe = strings.ReplaceAll(safe, " ", "_")
	safe = strings.ReplaceAll(safe, "/", "-")
	safe = strings.ReplaceAll(safe, "\\", "-")
	safe = strings.ReplaceAll(safe, ":", "-")
	safe = strings.ReplaceAll(safe, "*", "-")
	safe = strings.ReplaceAll(safe, "?", "-")
	safe = strings.ReplaceAll(safe, "\"", "-")
	safe = strings.ReplaceAll(safe, "<", "-")
	safe = strings.ReplaceAll(safe, ">", "-")
	safe = strings.ReplaceAll(safe, "|", "-")
	return safe
}

func exportFilename(rfqNo string, plantCode int, ext string) string {
	return fmt.Sprintf("vendor_comparison_%s_%d.%s", sanitizeFilename(rfqNo), plantCode, ext)
}

// ExportDirPath returns the directory where export copies are kept for the
// retention window. Defaults to "exports" under the working directory.
func ExportDirPath() string {
	dir := os.Getenv("EXPORT_DIR")
	if dir == "" {
		dir = "exports"
	}
	return dir
}

// exportCopyPath ensures the export directory exists and returns the path
// for a retention copy of the given file.
func exportCopyPath(filename string) string {
	dir := ExportDirPath()
	if err := os.MkdirAll(dir, 0755); err != nil {
		utils.Log.Warnf("Could not create export directory %s: %v", dir, err)
	}
	return filepath.Join(dir, filename)
}

// saveExportCopy stores a generated report on disk so the retention job can
// eventually purge it. Failures only log; the download itself proceeds from
// memory.
func saveExportCopy(filename string, data []byte) {
	path := exportCopyPath(filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		utils.Log.Warnf("Could not save export copy %s: %v", path, err)
		return
	}
	utils.Log.Debugf("Saved export copy: %s", path)
}
