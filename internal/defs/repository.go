package defs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Definition file names looked up under the content directory.
const (
	OpportunitiesFile = "opportunities.yaml"
	IncidentsFile     = "incidents.yaml"
	ScheduleFile      = "schedule.yaml"
	OutcomesFile      = "outcomes.yaml"
)

// Repository holds the loaded, immutable content definitions.
type Repository struct {
	Opportunities []OpportunityDefinition
	Incidents     []IncidentDefinition
	Schedule      ScheduleConfig
	Outcomes      OutcomeConfig
	Generator     GeneratorConfig
}

// Load reads all definition files from dir. Every file degrades to the
// built-in defaults on any problem; content errors are never fatal.
// dir == "" loads defaults only.
func Load(dir string) *Repository {
	r := &Repository{}

	loadFile(dir, OpportunitiesFile, defaultOpportunitiesYAML, func(data []byte) error {
		var raw rawOpportunityFile
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parse: %w", err)
		}
		var err error
		r.Opportunities, r.Generator, err = convertOpportunities(raw)
		return err
	})

	loadFile(dir, IncidentsFile, defaultIncidentsYAML, func(data []byte) error {
		var raw rawIncidentFile
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parse: %w", err)
		}
		var err error
		r.Incidents, err = convertIncidents(raw)
		return err
	})

	loadFile(dir, ScheduleFile, defaultScheduleYAML, func(data []byte) error {
		var raw rawScheduleFile
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parse: %w", err)
		}
		var err error
		r.Schedule, err = convertSchedule(raw)
		return err
	})

	loadFile(dir, OutcomesFile, defaultOutcomesYAML, func(data []byte) error {
		var raw rawOutcomeFile
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parse: %w", err)
		}
		var err error
		r.Outcomes, err = convertOutcomes(raw)
		return err
	})

	slog.Info("definitions loaded",
		"opportunities", len(r.Opportunities),
		"incidents", len(r.Incidents),
		"activities", len(r.Outcomes.Activities),
	)
	return r
}

// Default returns a repository built purely from the compiled-in content.
func Default() *Repository {
	return Load("")
}

// loadFile applies decode to dir/name, falling back to the built-in YAML
// on a missing file or any decode/validation failure.
func loadFile(dir, name, fallback string, decode func(data []byte) error) {
	if dir != "" {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if derr := decode(data); derr == nil {
				return
			} else {
				slog.Warn("definition file rejected, using built-in defaults", "file", path, "error", derr)
			}
		case !os.IsNotExist(err):
			slog.Warn("definition file unreadable, using built-in defaults", "file", path, "error", err)
		}
	}

	if err := decode([]byte(fallback)); err != nil {
		// Built-in content is covered by tests; this cannot happen at runtime.
		panic(fmt.Sprintf("defs: built-in %s is invalid: %v", name, err))
	}
}
