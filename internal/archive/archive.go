// Package archive bundles matched financial documents into a
// password-protected zip file, with a YAML manifest describing the run.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/finx/internal/checker"
	"github.com/harrison/finx/internal/logger"
	"github.com/yeka/zip"
	"gopkg.in/yaml.v3"
)

// ManifestName is the path of the run manifest inside the archive.
const ManifestName = "manifest.yaml"

// ManifestEntry describes one archived document.
type ManifestEntry struct {
	Path string `yaml:"path"`
	Size int64  `yaml:"size"`
}

// Manifest records what an archive run produced. It is written into the
// archive itself and returned to the caller for display.
type Manifest struct {
	RunID     string          `yaml:"run_id"`
	Created   string          `yaml:"created"`
	Years     []string        `yaml:"years"`
	Files     []ManifestEntry `yaml:"files"`
	TotalSize int64           `yaml:"total_size"`
}

// Options configures one archive run.
type Options struct {
	// Year restricts the archive to one tax year; empty archives all
	// available years
	Year string
	// OutputPath is the zip file to create. Empty derives
	// tax_documents_<years>.zip in the working directory.
	OutputPath string
	// Password encrypts the archive entries with AES-256. Required unless
	// running in dummy mode.
	Password string
	// Dummy collects and reports without writing a zip file
	Dummy bool
	// Confirm is consulted before archiving when documents are missing;
	// nil aborts the run in that case
	Confirm func() bool
}

// Result reports the outcome of an archive run.
type Result struct {
	OutputPath string
	Manifest   Manifest
	// Written is false for dummy runs and cancelled runs
	Written bool
}

// Builder creates document archives from a checker's catalog and tree.
type Builder struct {
	checker *checker.Checker
	log     *logger.ConsoleLogger
}

// NewBuilder creates a Builder. A nil logger discards all messages.
func NewBuilder(c *checker.Checker, log *logger.ConsoleLogger) *Builder {
	if log == nil {
		log = logger.Discard()
	}
	return &Builder{checker: c, log: log}
}

// MissingFiles runs the compliance check across the selected years and
// returns the accumulated missing-file placeholders, plus whether every
// required document was present.
func (b *Builder) MissingFiles(year string) ([]checker.MissingFile, bool) {
	years := b.selectYears(year)

	var missing []checker.MissingFile
	allFound := true
	for _, y := range years {
		report := b.checker.CheckYear(y, true)
		if !report.AllFound {
			allFound = false
			missing = append(missing, report.MissingFiles...)
		}
	}
	return missing, allFound
}

// CollectFiles gathers every document matching the catalog for the selected
// years, deduplicated and sorted.
func (b *Builder) CollectFiles(year string) ([]string, []string) {
	years := b.selectYears(year)

	seen := map[string]bool{}
	var files []string
	for _, y := range years {
		for category, entries := range b.checker.RequiredPatterns() {
			for _, entry := range entries {
				for _, match := range b.checker.MatchEntry(entry, y, category) {
					if !seen[match] {
						seen[match] = true
						files = append(files, match)
					}
				}
			}
		}
	}
	sort.Strings(files)
	return files, years
}

func (b *Builder) selectYears(year string) []string {
	if year != "" {
		return []string{year}
	}
	return b.checker.ListAvailableYears()
}

// Create runs the full archive workflow: check for missing documents,
// collect the matches, and write the encrypted zip with its manifest.
func (b *Builder) Create(opts Options) (*Result, error) {
	b.log.Infof("checking for missing documents before archiving")
	missing, allFound := b.MissingFiles(opts.Year)

	if !allFound {
		b.log.Warnf("%d documents are missing", len(missing))
		for _, mf := range missing {
			b.log.Warnf("- %s", mf.Path)
			if mf.URL != "" {
				b.log.Warnf("  can be found at: %s", mf.URL)
			}
		}
		if !opts.Dummy {
			if opts.Confirm == nil || !opts.Confirm() {
				b.log.Infof("archive creation cancelled")
				return &Result{Written: false}, nil
			}
		}
	} else {
		b.log.Infof("all required documents are present")
	}

	files, years := b.CollectFiles(opts.Year)
	if len(years) == 0 {
		return nil, fmt.Errorf("no tax years found under %s", b.checker.BasePath())
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no documents found to archive")
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = defaultOutputPath(years)
	}

	manifest, err := b.buildManifest(files, years)
	if err != nil {
		return nil, err
	}

	b.log.Infof("archiving %d files (%.2f MB) to %s",
		len(manifest.Files), float64(manifest.TotalSize)/(1024*1024), outputPath)
	for _, entry := range manifest.Files {
		b.log.Debugf("- %s (%.2f MB)", entry.Path, float64(entry.Size)/(1024*1024))
	}

	if opts.Dummy {
		b.log.Infof("dummy mode: no archive was created")
		return &Result{OutputPath: outputPath, Manifest: manifest, Written: false}, nil
	}

	if opts.Password == "" {
		return nil, fmt.Errorf("a password is required to create the archive")
	}

	if err := b.writeZip(outputPath, files, manifest, opts.Password); err != nil {
		return nil, err
	}

	b.log.Infof("created archive %s with %d files", outputPath, len(files))
	return &Result{OutputPath: outputPath, Manifest: manifest, Written: true}, nil
}

func defaultOutputPath(years []string) string {
	if len(years) == 1 {
		return fmt.Sprintf("tax_documents_%s.zip", years[0])
	}
	return fmt.Sprintf("tax_documents_%s-%s.zip", years[0], years[len(years)-1])
}

// buildManifest stats every file and assembles the run manifest. Paths are
// recorded relative to the document base so the archive is relocatable.
func (b *Builder) buildManifest(files, years []string) (Manifest, error) {
	manifest := Manifest{
		RunID:   uuid.New().String(),
		Created: time.Now().UTC().Format(time.RFC3339),
		Years:   years,
	}

	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			return Manifest{}, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		manifest.Files = append(manifest.Files, ManifestEntry{
			Path: b.relPath(path),
			Size: info.Size(),
		})
		manifest.TotalSize += info.Size()
	}
	return manifest, nil
}

func (b *Builder) relPath(path string) string {
	base := b.checker.BasePath()
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}

// writeZip creates the archive with AES-256 encrypted entries and the
// manifest as its first member.
func (b *Builder) writeZip(outputPath string, files []string, manifest Manifest, password string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create archive %s: %w", outputPath, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	manifestData, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}
	mw, err := zw.Encrypt(ManifestName, password, zip.AES256Encryption)
	if err != nil {
		return fmt.Errorf("failed to add manifest: %w", err)
	}
	if _, err := mw.Write(manifestData); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	for _, path := range files {
		if err := b.addFile(zw, path, password); err != nil {
			zw.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

func (b *Builder) addFile(zw *zip.Writer, path, password string) error {
	rel := b.relPath(path)
	b.log.Debugf("adding %s", rel)

	w, err := zw.Encrypt(rel, password, zip.AES256Encryption)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", rel, err)
	}

	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer src.Close()

	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return nil
}
