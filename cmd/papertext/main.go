// Command papertext extracts structured content from academic proceedings
// PDFs: main body text, the references section, and (for papers without
// metadata) title and authors. Results can be inspected as JSON or
// ingested into a sqlite paper table.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/example/papertext/internal/logging"
	"github.com/example/papertext/internal/paperdb"
	"github.com/example/papertext/internal/pdfx"
	"github.com/example/papertext/internal/proceedings"
	"github.com/example/papertext/internal/segment"
)

const version = "0.2.0"

// Config is the YAML config file. Every field has a default; the file
// only needs the values being overridden (for example recalibrated
// corruption thresholds for another corpus).
type Config struct {
	// MinPages skips PDFs below this page count (dividers, TOC files).
	MinPages int `yaml:"min_pages"`
	// DBPath is the sqlite file used by ingest.
	DBPath string `yaml:"db_path"`
	// Engine holds the segmentation thresholds and vocabularies.
	Engine segment.Config `yaml:"engine"`
}

func loadConfig(path string) (*Config, error) {
	cfg := &Config{
		MinPages: 2,
		DBPath:   "papers.db",
		Engine:   segment.DefaultConfig(),
	}
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// CLI defines the command tree.
var CLI struct {
	Config    string `help:"Optional YAML config file" type:"path"`
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log output format"`

	Extract ExtractCmd `cmd:"" help:"Extract one PDF and print the result as JSON"`
	Scan    ScanCmd    `cmd:"" help:"Report PDF and metadata counts per proceedings folder"`
	Ingest  IngestCmd  `cmd:"" help:"Extract all papers under a proceedings root into the database"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

type appContext struct {
	cfg    *Config
	engine *segment.Engine
	log    *slog.Logger
}

func main() {
	ktx := kong.Parse(&CLI,
		kong.Name("papertext"),
		kong.Description("Heuristic text extraction for academic proceedings PDFs."),
	)
	logger := logging.Setup(CLI.LogLevel, CLI.LogFormat)

	cfg, err := loadConfig(CLI.Config)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	engine, err := segment.New(cfg.Engine)
	if err != nil {
		logger.Error("compile vocabulary", "error", err)
		os.Exit(1)
	}

	err = ktx.Run(&appContext{cfg: cfg, engine: engine, log: logger})
	ktx.FatalIfErrorf(err)
}

// record is the JSON output of the extract command. Absent fields mean
// the corresponding heuristic reported absence, not an empty result.
type record struct {
	File       string   `json:"file"`
	Pages      int      `json:"pages"`
	Corrupted  bool     `json:"corrupted"`
	Title      string   `json:"title,omitempty"`
	Authors    string   `json:"authors,omitempty"`
	Text       string   `json:"text,omitempty"`
	References string   `json:"references,omitempty"`
	Notes      []string `json:"notes,omitempty"`
}

// extractRecord runs the full engine on one document. Corruption, absent
// structure and successful extraction are reported as distinct outcomes;
// only the engine knows which case occurred.
func extractRecord(eng *segment.Engine, doc *pdfx.Document) record {
	rec := record{File: doc.Path, Pages: doc.Pages}
	if eng.IsCorrupted(doc.Text) {
		rec.Corrupted = true
		return rec
	}

	text, err := eng.ExtractMainContent(doc.Text)
	switch {
	case err == nil:
		rec.Text = text
	case errors.Is(err, segment.ErrNoStructure):
		rec.Notes = append(rec.Notes, "no content structure detected, needs manual review")
	}

	if refs, err := eng.ExtractReferences(doc.Text); err == nil {
		rec.References = refs
	} else if errors.Is(err, segment.ErrNoReferences) {
		rec.Notes = append(rec.Notes, "no references section found")
	}

	if title, err := eng.ExtractTitle(doc.Text); err == nil {
		rec.Title = title
	}
	if authors, err := eng.ExtractAuthors(doc.Text); err == nil {
		rec.Authors = authors
	}
	return rec
}

// ExtractCmd runs the engine on a single PDF.
type ExtractCmd struct {
	PDF string `arg:"" help:"Path to the paper PDF" type:"existingfile"`
}

func (c *ExtractCmd) Run(app *appContext) error {
	doc, err := pdfx.GetRawText(context.Background(), c.PDF, 0)
	if err != nil {
		return err
	}
	rec := extractRecord(app.engine, doc)
	if rec.Corrupted {
		app.log.Warn("corrupted text, extraction not possible", "file", rec.File)
	}
	for _, n := range rec.Notes {
		app.log.Warn(n, "file", rec.File)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// ScanCmd reports the shape of a proceedings archive.
type ScanCmd struct {
	Root string `arg:"" help:"Proceedings root directory" type:"existingdir"`
}

func (c *ScanCmd) Run(app *appContext) error {
	rep, err := proceedings.Scan(c.Root)
	if err != nil {
		return err
	}
	for _, f := range rep.Folders {
		meta := "none"
		if f.MetadataFile != "" {
			meta = f.MetadataFile
		}
		fmt.Printf("%-24s year=%-6d pdfs=%-4d metadata=%s\n", f.Name, f.Year, f.PDFs, meta)
	}
	fmt.Printf("\nfolders=%d pdfs=%d with-metadata=%d without-metadata=%d\n",
		len(rep.Folders), rep.TotalPDFs, rep.WithMetadata, rep.WithoutMetadata)
	return nil
}

// IngestCmd extracts every paper below a proceedings root and inserts
// the results into the sqlite paper table. Papers whose text is
// corrupted or whose structure is undetectable are skipped and logged,
// never inserted half-filled.
type IngestCmd struct {
	Root     string `arg:"" help:"Proceedings root directory" type:"existingdir"`
	DB       string `help:"Sqlite database path (overrides config)" type:"path"`
	MinPages int    `help:"Skip PDFs with fewer pages (overrides config)" default:"-1"`
}

func (c *IngestCmd) Run(app *appContext) error {
	ctx := context.Background()
	dbPath := app.cfg.DBPath
	if c.DB != "" {
		dbPath = c.DB
	}
	minPages := app.cfg.MinPages
	if c.MinPages >= 0 {
		minPages = c.MinPages
	}

	store, err := paperdb.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.CreateSchema(ctx); err != nil {
		return err
	}

	rep, err := proceedings.Scan(c.Root)
	if err != nil {
		return err
	}

	var papers []paperdb.Paper
	var corrupted, unreviewed, tooShort, failed int
	for _, folder := range rep.Folders {
		if folder.Year == 0 {
			app.log.Warn("unknown proceedings folder, skipping", "folder", folder.Name)
			continue
		}
		pdfs, err := proceedings.ListPDFs(filepath.Join(c.Root, folder.Name))
		if err != nil {
			return err
		}
		for _, path := range pdfs {
			doc, err := pdfx.GetRawText(ctx, path, minPages)
			if errors.Is(err, pdfx.ErrTooShort) {
				tooShort++
				app.log.Debug("below page minimum, skipping", "file", path)
				continue
			}
			if err != nil {
				failed++
				app.log.Warn("extraction failed", "file", path, "error", err)
				continue
			}

			rec := extractRecord(app.engine, doc)
			switch {
			case rec.Corrupted:
				corrupted++
				app.log.Warn("corrupted text, skipping", "file", path)
				continue
			case rec.Text == "" || rec.Title == "" || rec.Authors == "":
				unreviewed++
				app.log.Warn("incomplete extraction, needs manual review",
					"file", path, "notes", strings.Join(rec.Notes, "; "))
				continue
			}

			p := paperdb.Paper{
				Title:    rec.Title,
				Authors:  rec.Authors,
				Year:     folder.Year,
				Text:     rec.Text,
				Filename: filepath.Base(path),
			}
			if rec.References != "" {
				p.References = &rec.References
			}
			papers = append(papers, p)
		}
	}

	res, err := store.InsertPapers(ctx, papers)
	if err != nil {
		return err
	}
	for _, sk := range res.Skipped {
		app.log.Warn("duplicate row skipped", "title", sk.Title, "error", sk.Err)
	}
	app.log.Info("ingest complete",
		"inserted", res.Inserted, "duplicates", len(res.Skipped),
		"corrupted", corrupted, "manual_review", unreviewed,
		"too_short", tooShort, "failed", failed)

	counts, err := store.CountByYear(ctx)
	if err != nil {
		return err
	}
	for _, yc := range counts {
		fmt.Printf("%d: %d\n", yc.Year, yc.Count)
	}
	return nil
}

// VersionCmd prints the tool version.
type VersionCmd struct{}

func (c *VersionCmd) Run(app *appContext) error {
	fmt.Printf("papertext %s\n", version)
	return nil
}
