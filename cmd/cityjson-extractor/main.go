package main

import (
	"flag"
	"log"
	"os"

	"renodat/internal/cityjson"
	"renodat/internal/config"
	"renodat/internal/extract"
	pg "renodat/internal/postgres"

	"github.com/google/uuid"
)

// Command line flags
var (
	runMode      int
	inputFile    string
	outputFile   string
	geoJSONFile  string
	dbURL        string
	skipDB       bool
	clearRecords bool
)

// RunMode represents different operation modes
const (
	RunModeExtract = 1
	RunModeAnalyze = 2
)

func init() {
	// Define command line flags
	flag.IntVar(&runMode, "mode", RunModeExtract, "Run mode: 1 = Extract building records, 2 = Analyze CityJSON structure")
	flag.StringVar(&inputFile, "input", "", "Path to CityJSON input file")
	flag.StringVar(&outputFile, "output", "", "Output JSON file for building records (default from config)")
	flag.StringVar(&geoJSONFile, "export-geojson", "", "Export resolved footprints to a GeoJSON file")
	flag.StringVar(&dbURL, "db-url", "", "Database connection URL (default from config)")
	flag.BoolVar(&skipDB, "skip-db", true, "Skip all database operations")
	flag.BoolVar(&clearRecords, "clear-records", false, "Clear stored building records before saving new ones (test mode)")
}

func main() {
	// Parse command line flags
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if inputFile == "" {
		inputFile = cfg.InputFile
	}
	if outputFile == "" {
		outputFile = cfg.OutputFile
	}
	if dbURL == "" {
		dbURL = cfg.DBUrl
	}

	// Validate input file path
	if inputFile == "" {
		log.Fatal("CityJSON input file must be specified")
	}
	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		log.Fatalf("CityJSON file not found: %s", inputFile)
	}

	// A document without CityObjects or vertices is unrecoverable, so the
	// load aborts the run before any per-building processing starts
	doc, err := cityjson.Load(inputFile)
	if err != nil {
		log.Fatalf("Failed to load CityJSON file: %v", err)
	}

	// Execute the appropriate function based on run mode
	switch runMode {
	case RunModeExtract:
		runExtractMode(doc)
	case RunModeAnalyze:
		runAnalyzeMode(doc)
	default:
		log.Fatalf("Invalid run mode: %d", runMode)
	}
}

// runExtractMode extracts one flat record per building and writes the batch
func runExtractMode(doc *cityjson.Document) {
	log.Printf("Processing CityJSON file: %s", inputFile)

	records := extract.New(doc).Run()

	if err := extract.WriteRecords(records, outputFile); err != nil {
		log.Fatalf("Failed to write building records: %v", err)
	}
	log.Printf("Wrote %d building records to %s", len(records), outputFile)

	// Export footprints to GeoJSON if enabled
	if geoJSONFile != "" {
		if err := extract.ExportFootprintsToGeoJSON(doc, records, geoJSONFile); err != nil {
			log.Fatalf("Failed to export footprints: %v", err)
		}
	}

	// Save records to database only if not skipping DB operations
	if skipDB {
		log.Println("Skipping database operations.")
		return
	}

	pg.Init(dbURL)
	defer pg.Close()

	if clearRecords {
		if err := pg.ClearBuildingRecords(); err != nil {
			log.Fatalf("Failed to clear building records: %v", err)
		}
	}

	importID := uuid.New().String()
	if err := pg.SaveBuildingRecords(records, importID); err != nil {
		log.Fatalf("Failed to save building records: %v", err)
	}
}
