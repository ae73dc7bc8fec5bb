package cli

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Malinga14/board-app/internal/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the boards as a local JSON API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	w, err := mustWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	cfg := w.cfg.Server
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if w.cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	fmt.Printf("Serving on %shttp://%s%s (ctrl+c to stop)\n", colorCyan, cfg.Addr, colorReset)
	return api.New(w.state, cfg, w.log).Run(cmd.Context())
}
