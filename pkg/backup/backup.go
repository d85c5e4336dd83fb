package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Denizmerty/RenameUtility/pkg/logger"
)

// Result reports one backup attempt. BackupPath is set even on failure so
// callers can inspect what was attempted.
type Result struct {
	BackupPath   string `json:"backup_path"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// DeleteResult reports one backup deletion. Deleting a path that no longer
// exists counts as success.
type DeleteResult struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Manager creates and deletes directory backups under a fixed root. The root
// is injected so tests can point it at a temporary directory.
type Manager struct {
	Root string
}

// NewManager returns a Manager rooted at root, falling back to DefaultRoot
// when root is empty.
func NewManager(root string) *Manager {
	if root == "" {
		root = DefaultRoot()
	}
	return &Manager{Root: root}
}

// DefaultRoot resolves the standard backup location: a RenameUtilityBackups
// folder inside the user's Documents directory, or under the working
// directory when the home directory cannot be determined.
func DefaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			wd = "."
		}
		return filepath.Join(wd, "RenameUtilityBackups")
	}
	return filepath.Join(home, "Documents", "RenameUtilityBackups")
}

var (
	invalidContextChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	allDots             = regexp.MustCompile(`^\.+$`)
)

// sanitizeContext turns an arbitrary context label into a safe folder-name
// component, falling back to the source directory's own name and then to
// fixed labels when nothing survives sanitization.
func sanitizeContext(contextName, sourcePath string) string {
	safe := contextName
	if safe == "" {
		if info, err := os.Stat(sourcePath); err == nil && info.IsDir() {
			safe = filepath.Base(sourcePath)
		}
		if safe == "" || safe == "." || safe == string(filepath.Separator) {
			safe = "BackupContext"
		}
	}
	safe = invalidContextChars.ReplaceAllString(safe, "_")
	safe = allDots.ReplaceAllString(safe, "_")
	safe = strings.Trim(safe, ". ")
	if len(safe) > 50 {
		safe = safe[:50]
	}
	if safe == "" {
		safe = "Backup"
	}
	return safe
}

// Create recursively copies sourcePath into a unique timestamped directory
// under the backup root. On any failure the partially written destination is
// removed best-effort and cleanup problems are appended to the original
// error rather than replacing it.
func (m *Manager) Create(sourcePath, contextName string) Result {
	var result Result

	timestamp := time.Now().Format("20060102_150405")
	safeContext := sanitizeContext(contextName, sourcePath)
	result.BackupPath = filepath.Join(m.Root, fmt.Sprintf("RenameBackup_%s_%s", safeContext, timestamp))

	if err := m.create(sourcePath, result.BackupPath); err != nil {
		result.ErrorMessage = fmt.Sprintf("Backup failed: %v", err)
		result.ErrorMessage += m.cleanup(result.BackupPath)
		return result
	}
	result.Success = true
	return result
}

func (m *Manager) create(sourcePath, backupPath string) error {
	info, err := os.Stat(sourcePath)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("backup source path is invalid or not a directory: '%s'", sourcePath)
	}

	if parentInfo, err := os.Stat(m.Root); err == nil {
		if !parentInfo.IsDir() {
			return fmt.Errorf("parent backup path exists but is not a directory '%s'", m.Root)
		}
	} else if err := os.MkdirAll(m.Root, 0755); err != nil {
		return fmt.Errorf("failed to create parent backup directory '%s': %w", m.Root, err)
	}

	if _, err := os.Stat(backupPath); err == nil {
		return fmt.Errorf("backup destination path already exists (collision?): '%s'", backupPath)
	}

	logger.Debug("backing up %s to %s", sourcePath, backupPath)
	return copyDirectory(sourcePath, backupPath)
}

// cleanup removes a partially written backup and returns a message fragment
// describing any cleanup problem, or "" when nothing needed doing.
func (m *Manager) cleanup(backupPath string) string {
	if backupPath == "" {
		return ""
	}
	if _, err := os.Stat(backupPath); err != nil {
		return ""
	}
	if err := os.RemoveAll(backupPath); err != nil {
		return fmt.Sprintf(" | Additionally, failed to cleanup partially created backup directory: %v", err)
	}
	return ""
}

// copyDirectory recursively copies source into destination. Regular files
// overwrite any existing file at the destination, subdirectories recurse,
// and other entry types such as symlinks are silently skipped. The first
// unrecoverable error aborts the copy.
func copyDirectory(source, destination string) error {
	if err := os.MkdirAll(destination, 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %s: %w", destination, err)
	}
	entries, err := os.ReadDir(source)
	if err != nil {
		return fmt.Errorf("failed to read source directory '%s': %w", source, err)
	}
	for _, entry := range entries {
		srcPath := filepath.Join(source, entry.Name())
		dstPath := filepath.Join(destination, entry.Name())
		switch {
		case entry.IsDir():
			if err := copyDirectory(srcPath, dstPath); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := copyFile(srcPath, dstPath); err != nil {
				return fmt.Errorf("failed to copy file '%s' to '%s': %w", srcPath, dstPath, err)
			}
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Delete removes a backup directory recursively. An already-absent path is
// success (delete is idempotent); anything that exists must be a directory.
func (m *Manager) Delete(backupPath string) DeleteResult {
	var result DeleteResult

	base := filepath.Base(backupPath)
	if backupPath == "" || base == "." || base == ".." || base == string(filepath.Separator) {
		result.ErrorMessage = fmt.Sprintf("Invalid backup path provided for deletion: '%s'", backupPath)
		return result
	}

	info, err := os.Stat(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			result.ErrorMessage = fmt.Sprintf("Backup path not found (already deleted?): '%s'.", backupPath)
			result.Success = true
			return result
		}
		result.ErrorMessage = fmt.Sprintf("Error checking backup existence '%s': %v", backupPath, err)
		return result
	}
	if !info.IsDir() {
		result.ErrorMessage = fmt.Sprintf("Path to delete is not a directory: '%s'.", backupPath)
		return result
	}

	if err := os.RemoveAll(backupPath); err != nil {
		result.ErrorMessage = fmt.Sprintf("Error deleting backup directory '%s': %v", backupPath, err)
		return result
	}
	if _, err := os.Stat(backupPath); err == nil {
		result.ErrorMessage = fmt.Sprintf("Verification failed: Directory still exists after reported successful deletion: '%s'.", backupPath)
		return result
	} else if !os.IsNotExist(err) {
		result.ErrorMessage = fmt.Sprintf("Error verifying backup deletion for '%s': %v", backupPath, err)
		return result
	}
	result.Success = true
	return result
}
