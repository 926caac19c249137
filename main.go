// windrose-report ingests tabular wind observations, computes descriptive and
// sector statistics, fits per-sector Weibull distributions, estimates wind
// power density, and renders text reports plus wind-rose charts.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/atmos-data/windrose.report/internal/config"
	"github.com/atmos-data/windrose.report/internal/db"
	"github.com/atmos-data/windrose.report/internal/ingest"
	"github.com/atmos-data/windrose.report/internal/report"
	"github.com/atmos-data/windrose.report/internal/rose"
	"github.com/atmos-data/windrose.report/internal/version"
	"github.com/atmos-data/windrose.report/internal/wind"
)

const defaultDBFile = "wind.db"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "ingest":
		runIngest(os.Args[2:])
	case "analyze":
		runAnalyze(os.Args[2:])
	case "runs":
		runRuns(os.Args[2:])
	case "migrate":
		runMigrate(os.Args[2:])
	case "version":
		fmt.Println(version.String())
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage: windrose-report <command> [flags]

Commands:
  ingest    Parse a CSV observation table and store it in the database
  analyze   Run the analysis pipeline and write report + wind-rose artifacts
  runs      List recent analysis runs
  migrate   Manage the database schema
  version   Print build information

Run 'windrose-report <command> -h' for command flags.`)
}

func runIngest(args []string) {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	csvPath := fs.String("csv", "", "Path to the CSV observation table (required)")
	dbPath := fs.String("db", defaultDBFile, "Path to the sqlite database")
	fs.Parse(args)

	if *csvPath == "" {
		log.Fatal("ingest requires -csv")
	}

	obs, parseDrops, err := ingest.ParseFile(*csvPath)
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", *csvPath, err)
	}

	cleaned, cleanDrops := wind.Clean(obs)
	cleanDrops.Add(parseDrops)

	database, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if err := database.InsertObservations(cleaned); err != nil {
		log.Fatalf("Failed to store observations: %v", err)
	}

	log.Printf("Ingested %d observations from %s (%d rows dropped)",
		len(cleaned), *csvPath, cleanDrops.Total())
}

func runAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	csvPath := fs.String("csv", "", "Analyze a CSV table directly instead of the database")
	dbPath := fs.String("db", defaultDBFile, "Path to the sqlite database")
	station := fs.String("station", "", "Station to analyze (required with -db)")
	from := fs.String("from", "", "Period start, YYYY-MM-DD (optional)")
	to := fs.String("to", "", "Period end, YYYY-MM-DD exclusive (optional)")
	configPath := fs.String("config", "", "Analysis config JSON (optional)")
	outDir := fs.String("out", "", "Output directory (overrides config)")
	fs.Parse(args)

	cfg := config.EmptyAnalysisConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadAnalysisConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	var (
		obs      []wind.Observation
		database *db.DB
	)
	if *csvPath != "" {
		var err error
		obs, _, err = ingest.ParseFile(*csvPath)
		if err != nil {
			log.Fatalf("Failed to parse %s: %v", *csvPath, err)
		}
	} else {
		if *station == "" {
			log.Fatal("analyze requires -station when reading from the database")
		}
		fromT := parseDateFlag(*from, "from")
		toT := parseDateFlag(*to, "to")

		var err error
		database, err = db.NewDB(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer database.Close()

		obs, err = database.Observations(*station, fromT, toT)
		if err != nil {
			log.Fatalf("Failed to load observations: %v", err)
		}
	}

	if len(obs) == 0 {
		log.Fatal("No observations to analyze")
	}

	result := wind.Analyze(obs, cfg.Options())

	out := cfg.GetOutputDir()
	if *outDir != "" {
		out = *outDir
	}
	runID := wind.RunTimestamp(time.Now())

	artifacts, err := report.WriteArtifacts(out, result, runID)
	if err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	roseCfg := rose.Config{
		SectorCount:   cfg.GetSectorCount(),
		SpeedBinEdges: cfg.GetSpeedBinEdges(),
		CalmThreshold: cfg.GetCalmThreshold(),
	}
	cleaned, _ := wind.Clean(obs)
	title := fmt.Sprintf("Wind rose — %s (%s)", result.Station, result.PeriodLabel())

	pngPath := artifacts.Dir + "/windrose.png"
	if err := rose.WritePNG(pngPath, title, cleaned, roseCfg); err != nil {
		log.Printf("Failed to render PNG rose: %v", err)
	}
	htmlPath := artifacts.Dir + "/windrose.html"
	if err := rose.WriteHTML(htmlPath, title, cleaned); err != nil {
		log.Printf("Failed to render HTML rose: %v", err)
	}

	if database != nil {
		run := &db.AnalysisRun{
			Station:         result.Station,
			StartDate:       result.PeriodFrom.Format("2006-01-02"),
			EndDate:         result.PeriodTo.Format("2006-01-02"),
			SectorCount:     result.SectorCount,
			TotalRows:       result.TotalRows,
			DroppedRows:     result.Dropped.Total(),
			MeanSpeedMps:    result.Speed.Mean,
			DominantSector:  result.DominantSector,
			PowerDensityWm2: result.PowerDensityWm2,
			WindClass:       result.WindClass,
			ReportPath:      artifacts.ReportPath,
		}
		if err := database.RecordAnalysisRun(run); err != nil {
			log.Printf("Failed to record analysis run: %v", err)
		} else {
			log.Printf("Recorded analysis run %s", run.RunID)
		}
	}

	log.Printf("Report written to %s", artifacts.Dir)
}

func runRuns(args []string) {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	dbPath := fs.String("db", defaultDBFile, "Path to the sqlite database")
	limit := fs.Int("limit", 20, "Maximum runs to list")
	fs.Parse(args)

	database, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	runs, err := database.RecentAnalysisRuns(*limit)
	if err != nil {
		log.Fatalf("Failed to list runs: %v", err)
	}
	if len(runs) == 0 {
		fmt.Println("no analysis runs recorded")
		return
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  %s..%s  mean=%.2f m/s  power=%.1f W/m2  %s\n",
			r.RunID, r.Station, r.StartDate, r.EndDate,
			r.MeanSpeedMps, r.PowerDensityWm2, r.WindClass)
	}
}

func runMigrate(args []string) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	dbPath := fs.String("db", defaultDBFile, "Path to the sqlite database")

	// Flags come before the action: windrose-report migrate -db wind.db up
	fs.Parse(args)

	db.RunMigrateCommand(fs.Args(), *dbPath)
}

func parseDateFlag(value, name string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		log.Fatalf("Invalid -%s date %q (want YYYY-MM-DD): %v", name, value, err)
	}
	return t
}
