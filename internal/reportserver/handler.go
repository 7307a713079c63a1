package reportserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"

	"omnibench/internal/report"
)

// NewHandler builds the HTTP handler for serving run reports, raw results,
// and the optional DuckDB warehouse file.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.OutputDir == "" {
		return nil, errors.New("reportserver: output dir is required")
	}
	manifest, err := loadEmbeddedManifest()
	if err != nil {
		return nil, err
	}
	assets, err := resolveReportAssets(manifest)
	if err != nil {
		return nil, err
	}
	resolver := newAssetResolver(cfg.AssetsBaseURL, manifest)
	shell, err := newShell(resolver, assets)
	if err != nil {
		return nil, err
	}
	assetsFS, err := embeddedAssetsFS()
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", serveIndex(cfg.OutputDir, shell))
	mux.Handle("GET /api/runs", serveRunList(cfg.OutputDir))
	mux.Handle("GET /runs/{benchmark}/{run}/{$}", serveRunReport(cfg.OutputDir))
	mux.Handle("GET /runs/{benchmark}/{run}/results.json", serveRunResults(cfg.OutputDir))
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(assetsFS)))
	if cfg.DBPath != "" {
		mux.Handle("/data/warehouse.duckdb", serveDatabase(cfg.DBPath))
	}
	return mux, nil
}

// shell wraps page content with the asset links.
type shell struct {
	scriptURL string
	styleURLs []string
}

func newShell(resolver AssetResolver, assets reportAssets) (shell, error) {
	scriptURL, err := resolver.URL(assets.Script)
	if err != nil {
		return shell{}, err
	}
	s := shell{scriptURL: scriptURL}
	for _, style := range assets.Styles {
		styleURL, err := resolver.URL(style)
		if err != nil {
			return shell{}, err
		}
		s.styleURLs = append(s.styleURLs, styleURL)
	}
	return s, nil
}

func (s shell) wrap(title string, body templ.Component) templ.Component {
	return page(title, s.styleURLs, s.scriptURL, body)
}

// serveIndex lists every run under the output directory.
func serveIndex(outputDir string, layout shell) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		runs, err := loadRuns(outputDir)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = layout.wrap("omnibench runs", report.RunsTable(runs)).Render(r.Context(), w)
	})
}

// runSummary is the JSON shape of /api/runs entries.
type runSummary struct {
	RunID     string `json:"run_id"`
	Benchmark string `json:"benchmark"`
	Kind      string `json:"kind"`
	Model     string `json:"model"`
	Samples   int    `json:"samples"`
}

func serveRunList(outputDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		runs, err := loadRuns(outputDir)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		out := make([]runSummary, 0, len(runs))
		for _, run := range runs {
			summary := runSummary{
				RunID:     run.Manifest.RunID,
				Benchmark: run.Manifest.Benchmark,
				Kind:      run.Manifest.Kind,
				Model:     run.Manifest.Model,
			}
			switch {
			case run.Results.OCR != nil:
				summary.Samples = len(run.Results.OCR.Results)
			case run.Results.STT != nil:
				summary.Samples = len(run.Results.STT.Results)
			}
			out = append(out, summary)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	})
}

func serveRunReport(outputDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		runDir, ok := runDirFromRequest(outputDir, r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		run, err := report.LoadRun(runDir)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = report.RunPage(run).Render(r.Context(), w)
	})
}

func serveRunResults(outputDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		runDir, ok := runDirFromRequest(outputDir, r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		run, err := report.LoadRun(runDir)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		path := filepath.Join(runDir, "results.json")
		if override := run.Manifest.ResultsPath; override != "" && withinDir(outputDir, override) {
			if _, err := os.Stat(override); err == nil {
				path = override
			}
		}
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, path)
	})
}

// serveDatabase serves the DuckDB file from disk for browser-side processing.
func serveDatabase(dbPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		http.ServeFile(w, r, dbPath)
	})
}

// runDirFromRequest maps path values onto a run directory, rejecting
// segments that could escape the output directory.
func runDirFromRequest(outputDir string, r *http.Request) (string, bool) {
	benchmark := r.PathValue("benchmark")
	runID := r.PathValue("run")
	for _, segment := range []string{benchmark, runID} {
		if segment == "" || segment == "." || segment == ".." || strings.ContainsAny(segment, `/\`) {
			return "", false
		}
	}
	return filepath.Join(outputDir, benchmark, runID), true
}

// withinDir reports whether path resolves inside root.
func withinDir(root, path string) bool {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func loadRuns(outputDir string) ([]report.Run, error) {
	dirs, err := report.ListRuns(outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	runs := make([]report.Run, 0, len(dirs))
	for _, dir := range dirs {
		run, err := report.LoadRun(dir)
		if err != nil {
			continue
		}
		runs = append(runs, run)
	}
	return runs, nil
}
