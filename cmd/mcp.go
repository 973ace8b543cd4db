package cmd

import (
	"errors"
	"net/http"
	"time"

	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/LakGar/Coco-sub001/internal/mcp"
	"github.com/LakGar/Coco-sub001/internal/metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Coco MCP server",
	Long:  `Launch an MCP server that lets AI agents fetch care snapshots via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		if addr := viper.GetString("metrics-addr"); addr != "" {
			serveMetrics(addr)
		}
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}

// serveMetrics exposes Prometheus metrics next to the stdio server.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			contract.LogWarn("Metrics server stopped", err)
		}
	}()
	contract.Logger().Info("serving metrics", "addr", addr)
}
