package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Denizmerty/RenameUtility/pkg/backup"
)

var backupContextLabel string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create, list and delete directory backups",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create <directory>",
	Short: "Back up a directory into the backup root",
	Long: `Recursively copy a directory into a timestamped folder under the
backup root. Symlinks are skipped. The backup root defaults to
~/Documents/RenameUtilityBackups and can be overridden with
RENAMEUTIL_BACKUP_DIR.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m := backup.NewManager(cfg.BackupDir)
		result := m.Create(args[0], backupContextLabel)
		if !result.Success {
			return fmt.Errorf("%s", result.ErrorMessage)
		}
		fmt.Printf("%s %s\n", color.New(color.FgGreen).Sprint("Backup created:"), result.BackupPath)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups under the backup root",
	RunE: func(cmd *cobra.Command, args []string) error {
		root := cfg.BackupDir
		entries, err := os.ReadDir(root)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Println("No backups found.")
				return nil
			}
			return fmt.Errorf("failed to read backup root '%s': %w", root, err)
		}
		var names []string
		for _, entry := range entries {
			if entry.IsDir() && strings.HasPrefix(entry.Name(), "RenameBackup_") {
				names = append(names, entry.Name())
			}
		}
		if len(names) == 0 {
			fmt.Println("No backups found.")
			return nil
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var backupDeleteCmd = &cobra.Command{
	Use:   "delete <backup-name>",
	Short: "Delete a backup directory",
	Long: `Delete a backup by name (resolved under the backup root) or by full
path. Deleting a backup that no longer exists is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if !strings.ContainsRune(path, os.PathSeparator) {
			path = cfg.BackupDir + string(os.PathSeparator) + path
		}
		m := backup.NewManager(cfg.BackupDir)
		result := m.Delete(path)
		if !result.Success {
			return fmt.Errorf("%s", result.ErrorMessage)
		}
		if result.ErrorMessage != "" {
			fmt.Println(result.ErrorMessage)
		} else {
			fmt.Printf("Deleted %s\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupDeleteCmd)

	backupCreateCmd.Flags().StringVar(&backupContextLabel, "context", "", "Label for the backup folder name (default: directory name)")
}
