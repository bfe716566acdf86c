package plugin

import (
	"testing"
)

func TestUIDGeneration(t *testing.T) {
	plugins := []string{
		"com.company1.plugin1",
		"com.company1.plugin2",
		"com.company2.plugin1",
		"com.justyntemme.wavecompositor",
	}

	uids := make(map[[16]byte]string)
	for _, pluginID := range plugins {
		info := Info{ID: pluginID}
		uid := info.UID()

		if uid != info.UID() {
			t.Errorf("UID generation is not deterministic for %s", pluginID)
		}
		if existingID, exists := uids[uid]; exists {
			t.Errorf("UID collision between %s and %s", pluginID, existingID)
		}
		uids[uid] = pluginID
	}
}

func TestInfoValidate(t *testing.T) {
	tests := []struct {
		name    string
		info    Info
		wantErr bool
	}{
		{"valid", Info{ID: "com.example.plugin", Name: "Example"}, false},
		{"empty ID", Info{Name: "Example"}, true},
		{"empty name", Info{ID: "com.example.plugin"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.info.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
