package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/canvasort/pkg/compile"
)

// DefaultSettingsFile is the settings file name looked up in the working
// directory when --config is not given.
const DefaultSettingsFile = ".canvasort.toml"

// fileSettings mirrors the TOML settings file. Every field is a pointer so
// an absent key falls back to the compiled-in default instead of false.
type fileSettings struct {
	Sort struct {
		ColorNodes      *bool `toml:"color_nodes"`
		ColorEdges      *bool `toml:"color_edges"`
		Flow            *bool `toml:"flow"`
		SemanticOrphans *bool `toml:"semantic_orphans"`
	} `toml:"sort"`
	Export struct {
		StripMetadata            *bool `toml:"strip_metadata"`
		StripEdgesWhenFlowSorted *bool `toml:"strip_edges_when_flow_sorted"`
	} `toml:"export"`
}

// loadSettings returns the compile settings from the TOML file at path,
// layered over the defaults. A missing file is only an error when the path
// was requested explicitly.
func loadSettings(path string, explicit bool) (compile.Settings, error) {
	s := compile.DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return s, nil
		}
		return s, fmt.Errorf("read settings %s: %w", path, err)
	}

	var fs fileSettings
	if err := toml.Unmarshal(data, &fs); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}

	apply := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&s.ColorSortNodes, fs.Sort.ColorNodes)
	apply(&s.ColorSortEdges, fs.Sort.ColorEdges)
	apply(&s.FlowSortNodes, fs.Sort.Flow)
	apply(&s.SemanticSortOrphans, fs.Sort.SemanticOrphans)
	apply(&s.StripMetadata, fs.Export.StripMetadata)
	apply(&s.StripEdgesWhenFlowSorted, fs.Export.StripEdgesWhenFlowSorted)

	return s, nil
}

// saveSettings writes the settings as a TOML file at path. All keys are
// written explicitly so the file documents the full configuration.
func saveSettings(path string, s compile.Settings) error {
	var fs fileSettings
	fs.Sort.ColorNodes = &s.ColorSortNodes
	fs.Sort.ColorEdges = &s.ColorSortEdges
	fs.Sort.Flow = &s.FlowSortNodes
	fs.Sort.SemanticOrphans = &s.SemanticSortOrphans
	fs.Export.StripMetadata = &s.StripMetadata
	fs.Export.StripEdgesWhenFlowSorted = &s.StripEdgesWhenFlowSorted

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create settings %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(fs); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}
