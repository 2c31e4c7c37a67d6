// Package config loads, merges, and normalizes the layered finx
// configuration documents: the base catalog, the private override catalog,
// the directory mapping, and the entities file.
//
// Loading is deliberately forgiving. A missing file yields an empty document
// and a logged warning; a malformed file yields an empty document and a
// logged error. Nothing in this package aborts a run.
package config

import (
	"os"
	"path/filepath"

	"github.com/harrison/finx/internal/logger"
	"gopkg.in/yaml.v3"
)

// Default configuration filenames, looked up relative to the working
// directory and the document base path.
const (
	DefaultBaseFile     = "finx_base.yml"
	DefaultPrivateFile  = "finx_private.yml"
	DefaultMappingFile  = "directory_mapping.yml"
	DefaultEntitiesFile = "finx_entities.yml"
)

// Document is a raw configuration mapping as loaded from YAML.
type Document = map[string]any

// Loader loads configuration documents with recoverable failure semantics.
type Loader struct {
	log *logger.ConsoleLogger
}

// NewLoader creates a Loader that reports problems to the given logger.
// A nil logger discards all messages.
func NewLoader(log *logger.ConsoleLogger) *Loader {
	if log == nil {
		log = logger.Discard()
	}
	return &Loader{log: log}
}

// LoadDocument reads a YAML document from path. A missing file returns an
// empty document with a warning; a malformed file returns an empty document
// with an error log. Neither is fatal.
func (l *Loader) LoadDocument(path string) Document {
	if path == "" {
		return Document{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.log.Warnf("configuration file not found at %s", path)
		} else {
			l.log.Errorf("error reading configuration file %s: %v", path, err)
		}
		return Document{}
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		l.log.Errorf("error parsing configuration file %s: %v", path, err)
		return Document{}
	}
	if doc == nil {
		doc = Document{}
	}
	return doc
}

// LoadDirectoryMapping reads the category-to-directories mapping document.
// The document carries a single top-level directory_mapping key. Missing or
// malformed files degrade to an empty mapping, meaning every category is
// searched across the whole base tree.
func (l *Loader) LoadDirectoryMapping(path string) map[string][]string {
	if path == "" {
		l.log.Warnf("no directory mapping file specified")
		return map[string][]string{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.log.Warnf("directory mapping file not found at %s", path)
		} else {
			l.log.Errorf("error reading directory mapping file %s: %v", path, err)
		}
		return map[string][]string{}
	}

	var doc struct {
		DirectoryMapping map[string][]string `yaml:"directory_mapping"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		l.log.Errorf("error parsing directory mapping file %s: %v", path, err)
		return map[string][]string{}
	}
	if doc.DirectoryMapping == nil {
		return map[string][]string{}
	}
	return doc.DirectoryMapping
}

// FindFile locates a configuration file by name. Search order: the explicit
// path if it exists, then the current working directory, then the base
// directory. When nothing exists, the base-directory path is returned so the
// subsequent load logs one consistent warning.
func (l *Loader) FindFile(filename, explicit, basePath string) string {
	if explicit != "" {
		if fileExists(explicit) {
			l.log.Debugf("found %s at explicit path: %s", filename, explicit)
			return explicit
		}
	}

	if cwd, err := os.Getwd(); err == nil {
		cwdPath := filepath.Join(cwd, filename)
		if fileExists(cwdPath) {
			l.log.Debugf("found %s in current working directory: %s", filename, cwdPath)
			return cwdPath
		}
	}

	if basePath != "" {
		basePathFile := filepath.Join(basePath, filename)
		if fileExists(basePathFile) {
			l.log.Debugf("found %s in base directory: %s", filename, basePathFile)
			return basePathFile
		}
	}

	l.log.Debugf("could not find %s", filename)
	if basePath != "" {
		return filepath.Join(basePath, filename)
	}
	return filename
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
