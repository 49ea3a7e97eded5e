package cmd

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/fnbench/fnbench/internal/report"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve metrics and results over HTTP",
	Long: `Exposes the benchmark counters in Prometheus format under /metrics and the
JSON result files under /results.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveAddr, "listen", "l", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = cfg.ListenAddr
	}

	writer := report.NewWriter(cfg.ResultsDir, logger)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(report.Global().Registry(), promhttp.HandlerOpts{}))
	r.HandleFunc("/results", func(w http.ResponseWriter, req *http.Request) {
		files, err := writer.Files()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		names := make([]string, 0, len(files))
		for _, f := range files {
			names = append(names, filepath.Base(f))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"files": names,
			"count": len(names),
		})
	})
	r.HandleFunc("/results/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := filepath.Base(mux.Vars(req)["name"])
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, req, filepath.Join(cfg.ResultsDir, name))
	})

	logger.Info("serving", map[string]interface{}{
		"addr": addr,
	})
	return http.ListenAndServe(addr, r)
}
