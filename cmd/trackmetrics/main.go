// Command trackmetrics runs the trial-metrics extraction pipeline over a
// recorded session CSV and writes the per-trial and per-condition tables.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/motorlab/tracking.report/internal/config"
	"github.com/motorlab/tracking.report/internal/db"
	"github.com/motorlab/tracking.report/internal/metrics"
	"github.com/motorlab/tracking.report/internal/monitoring"
	"github.com/motorlab/tracking.report/internal/pipeline"
	"github.com/motorlab/tracking.report/internal/report"
	"github.com/motorlab/tracking.report/internal/session"
	"github.com/motorlab/tracking.report/internal/version"
)

var (
	l             = flag.Float64("L", 400.0, "Travel distance L in px (vertical: -L/2 to +L/2)")
	posWinMS      = flag.Float64("poswin-ms", 100.0, "Half width of the truth-centered variance windows in ms")
	startMarginPx = flag.Float64("start-margin-px", 20.0, "Onset position threshold margin above the start position in px")
	endMarginPx   = flag.Float64("end-margin-px", 20.0, "Offset position threshold margin below the goal position in px")
	motionT       = flag.Float64("T", 1.0, "Ideal motion duration T in s (window centers tau and tau+T)")
	vStart        = flag.Float64("v-start", 50.0, "Onset velocity threshold in px/s")
	vStop         = flag.Float64("v-stop", 20.0, "Offset absolute-velocity threshold in px/s")
	holdStartMS   = flag.Float64("hold-start-ms", 80.0, "Onset sustained-hold duration in ms")
	holdStopMS    = flag.Float64("hold-stop-ms", 100.0, "Offset sustained-hold duration in ms")
	useVelocity   = flag.Bool("use-velocity", true, "Detect onset/offset from velocity; false uses position thresholds")
	configPath    = flag.String("config", "", "Optional JSON parameter file; explicit flags override it")
	outDir        = flag.String("out-dir", "analysis", "Directory for the output CSV tables")
	dbPath        = flag.String("db", "", "Optional SQLite database path to persist the run")
	htmlPath      = flag.String("html", "", "Optional HTML chart report path")
	showVersion   = flag.Bool("version", false, "Print version information and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [flags] <session.csv>\n\nExtracts per-trial tracking metrics and per-condition summaries.\n\nFlags:\n",
			os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("trackmetrics %s\n", version.String())
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	csvPath := flag.Arg(0)

	cfg, err := resolveConfig()
	if err != nil {
		log.Fatalf("Failed to resolve configuration: %v", err)
	}
	params := cfg.Params()

	f, err := os.Open(csvPath)
	if err != nil {
		log.Fatalf("Failed to open session file: %v", err)
	}
	sess, err := session.LoadCSV(f)
	f.Close()
	if err != nil {
		var schemaErr *session.SchemaError
		if errors.As(err, &schemaErr) {
			log.Fatalf("Session file %s is missing required column %q", csvPath, schemaErr.Column)
		}
		log.Fatalf("Failed to load session file: %v", err)
	}
	if sess.Dropped > 0 {
		monitoring.Logf("dropped %d rows with missing or unparseable fields", sess.Dropped)
	}

	result := pipeline.Run(sess, params)
	monitoring.Logf("computed metrics for %d trials across %d condition groups",
		len(result.Trials), len(result.Summary))

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	base := strings.TrimSuffix(filepath.Base(csvPath), filepath.Ext(csvPath))
	trialsPath := filepath.Join(*outDir, base+"_trials.csv")
	summaryPath := filepath.Join(*outDir, base+"_by_condition.csv")

	if err := writeCSV(trialsPath, func(f *os.File) error {
		return report.WriteTrials(f, result.Trials)
	}); err != nil {
		log.Fatalf("Failed to write per-trial metrics: %v", err)
	}
	log.Printf("per-trial metrics saved: %s", trialsPath)

	if err := writeCSV(summaryPath, func(f *os.File) error {
		return report.WriteSummary(f, result.Summary)
	}); err != nil {
		log.Fatalf("Failed to write condition summary: %v", err)
	}
	log.Printf("by-condition summary saved: %s", summaryPath)

	if *htmlPath != "" {
		if err := writeCSV(*htmlPath, func(f *os.File) error {
			return report.WriteConditionCharts(f, result.Summary)
		}); err != nil {
			log.Fatalf("Failed to write chart report: %v", err)
		}
		log.Printf("chart report saved: %s", *htmlPath)
	}

	if *dbPath != "" {
		if err := persistRun(*dbPath, csvPath, params, result); err != nil {
			log.Fatalf("Failed to persist run: %v", err)
		}
	}
}

// resolveConfig merges the optional JSON parameter file with the command
// line: file values replace defaults, explicitly set flags win over both.
func resolveConfig() (*config.AnalysisConfig, error) {
	cfg := config.EmptyAnalysisConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["L"] {
		cfg.L = l
	}
	if set["poswin-ms"] {
		cfg.PosWindowMS = posWinMS
	}
	if set["start-margin-px"] {
		cfg.StartMarginPx = startMarginPx
	}
	if set["end-margin-px"] {
		cfg.EndMarginPx = endMarginPx
	}
	if set["T"] {
		cfg.T = motionT
	}
	if set["v-start"] {
		cfg.VStart = vStart
	}
	if set["v-stop"] {
		cfg.VStop = vStop
	}
	if set["hold-start-ms"] {
		cfg.HoldStartMS = holdStartMS
	}
	if set["hold-stop-ms"] {
		cfg.HoldStopMS = holdStopMS
	}
	if set["use-velocity"] {
		cfg.UseVelocity = useVelocity
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeCSV(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func persistRun(path, sourceFile string, params metrics.Params, result pipeline.Result) error {
	database, err := db.NewDB(path)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := database.CreateRun(sourceFile, params)
	if err != nil {
		return err
	}
	if err := database.InsertTrialMetrics(runID, result.Trials); err != nil {
		return err
	}
	if err := database.InsertSummaries(runID, result.Summary); err != nil {
		return err
	}
	log.Printf("run persisted: %s (run_id=%s)", path, runID)
	return nil
}
