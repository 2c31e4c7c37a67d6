package entity

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/finx/internal/logger"
	"gopkg.in/yaml.v3"
)

// Manager loads, saves, and looks up entities from a YAML file.
type Manager struct {
	path string
	log  *logger.ConsoleLogger
}

// NewManager creates a Manager for the given entities file path.
// A nil logger discards all messages.
func NewManager(path string, log *logger.ConsoleLogger) *Manager {
	if log == nil {
		log = logger.Discard()
	}
	return &Manager{path: path, log: log}
}

// Load reads the entities file. A missing file yields an empty list without
// error; invalid individual records are skipped with a log line. A
// structurally wrong document (no entities list) is an error.
func (m *Manager) Load() ([]Entity, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entity{}, nil
		}
		return nil, fmt.Errorf("failed to read entities file: %w", err)
	}

	var doc struct {
		Entities []Entity `yaml:"entities"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML in entities file %s: %w", m.path, err)
	}
	if doc.Entities == nil {
		if len(data) == 0 {
			return []Entity{}, nil
		}
		var probe map[string]any
		if yaml.Unmarshal(data, &probe) == nil && probe == nil {
			return []Entity{}, nil
		}
		return nil, fmt.Errorf("invalid structure in entities file %s: expected an entities list", m.path)
	}

	entities := make([]Entity, 0, len(doc.Entities))
	for _, e := range doc.Entities {
		if err := e.Validate(); err != nil {
			m.log.Warnf("skipping invalid entity: %v", err)
			continue
		}
		entities = append(entities, e)
	}
	return entities, nil
}

// Save writes entities back to the YAML file, creating parent directories
// as needed.
func (m *Manager) Save(entities []Entity) error {
	doc := map[string]any{"entities": entities}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize entities: %w", err)
	}
	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write entities to %s: %w", m.path, err)
	}
	return nil
}

// ByID returns the entity with the given id, falling back to a name match
// for configs predating explicit entity ids. Returns nil when not found.
func (m *Manager) ByID(id string) *Entity {
	entities, err := m.Load()
	if err != nil {
		m.log.Errorf("failed to load entities: %v", err)
		return nil
	}
	for i := range entities {
		if entities[i].ID == id {
			return &entities[i]
		}
	}
	for i := range entities {
		if entities[i].Name == id {
			return &entities[i]
		}
	}
	return nil
}

// List returns all entities, optionally filtered by type.
func (m *Manager) List(entityType Type) ([]Entity, error) {
	entities, err := m.Load()
	if err != nil {
		return nil, err
	}
	if entityType == "" {
		return entities, nil
	}
	filtered := make([]Entity, 0, len(entities))
	for _, e := range entities {
		if e.Type == entityType {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}
