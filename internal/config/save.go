package config

import (
	"fmt"

	"github.com/harrison/finx/internal/filelock"
	"gopkg.in/yaml.v3"
)

// Save serializes a configuration document back to disk. The write is
// performed atomically under a file lock so a concurrent finx invocation
// never sees a partial document. It is still not safe against another
// process rewriting the same file outside finx; that is an accepted
// limitation of the update-dates write-back.
func Save(path string, doc Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}
	if err := filelock.LockAndWrite(path, data); err != nil {
		return fmt.Errorf("failed to write configuration to %s: %w", path, err)
	}
	return nil
}
