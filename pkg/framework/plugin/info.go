package plugin

import (
	"crypto/md5"
	"errors"
)

// Info contains plugin metadata
type Info struct {
	ID       string // Unique plugin identifier (e.g., "com.example.myplugin")
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	Category string // Plugin category (e.g., "Fx", "Instrument|Synth")
}

// UID derives the 16-byte class ID from the string ID
func (i Info) UID() [16]byte {
	return md5.Sum([]byte(i.ID))
}

// Validate checks the metadata a host needs
func (i Info) Validate() error {
	if i.ID == "" {
		return errors.New("plugin ID cannot be empty")
	}
	if i.Name == "" {
		return errors.New("plugin name cannot be empty")
	}
	return nil
}
