package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Malinga14/board-app/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize board in the current directory",
	Long:  "Creates a .board/ directory with default config and storage, seeded with the sample project.",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	// Check if already initialized.
	if _, err := os.Stat(boardDirName); err == nil {
		return fmt.Errorf("board already initialized in this directory (.board/ exists)")
	}
	if err := os.MkdirAll(boardDirName, 0755); err != nil {
		return fmt.Errorf("create .board: %w", err)
	}

	cfg := config.DefaultConfig()
	if flagDB != "" {
		cfg.Storage.Path = flagDB
	}
	if err := os.MkdirAll(filepath.Dir(flagConfig), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := config.Save(flagConfig, cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	// Opening the workspace creates the database and seeds it.
	w, err := openWorkspace(cfg)
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}
	defer w.Close()

	b, _ := w.state.CurrentBoard()
	fmt.Println("Initialized board in .board/")
	fmt.Printf("Seeded %s%s%s with %d tasks.\n", colorBold, b.Title, colorReset, b.TaskCount())
	fmt.Println("")
	fmt.Println("Next steps:")
	fmt.Println("  1. Run: board show")
	fmt.Println("  2. Run: board task add todo \"your task\"")
	fmt.Println("  3. Run: board ui")

	return nil
}
