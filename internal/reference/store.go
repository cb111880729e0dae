package reference

import (
	_ "embed"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/epeers/riskprofile/internal/models"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed data/scenarios.yaml
var defaultScenarioYAML []byte

// scenarioFile is the on-disk layout of a scenario catalog
type scenarioFile struct {
	Version   string            `yaml:"version"`
	Scenarios []models.Scenario `yaml:"scenarios"`
}

// Snapshot is an immutable view of all reference data.
// Callers must not modify anything reachable from it.
type Snapshot struct {
	Questionnaire  *Questionnaire
	CatalogVersion string
	scenarios      map[string]models.Scenario
	scenarioOrder  []string
}

// Scenario looks up a scenario by ID
func (s *Snapshot) Scenario(id string) (models.Scenario, bool) {
	sc, ok := s.scenarios[id]
	return sc, ok
}

// Scenarios returns the catalog in file order
func (s *Snapshot) Scenarios() []models.Scenario {
	out := make([]models.Scenario, 0, len(s.scenarioOrder))
	for _, id := range s.scenarioOrder {
		out = append(out, s.scenarios[id])
	}
	return out
}

// Store hands out reference data snapshots. Reloads replace the whole snapshot
// atomically, so a calculation never observes a half-applied update.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store holding the built-in questionnaire and scenario catalog
func NewStore() (*Store, error) {
	snap, err := buildSnapshot(DefaultQuestionnaire(), defaultScenarioYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in scenarios: %w", err)
	}
	s := &Store{}
	s.current.Store(snap)
	return s, nil
}

// Snapshot returns the current reference data
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// ReloadScenarios parses a YAML scenario catalog and swaps it in.
// On error the previous catalog stays in place.
func (s *Store) ReloadScenarios(data []byte) error {
	prev := s.current.Load()
	snap, err := buildSnapshot(prev.Questionnaire, data)
	if err != nil {
		return err
	}
	s.current.Store(snap)
	log.Infof("Loaded scenario catalog %s (%d scenarios)", snap.CatalogVersion, len(snap.scenarioOrder))
	return nil
}

// LoadScenarioFile reads a scenario catalog from disk and swaps it in
func (s *Store) LoadScenarioFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}
	if err := s.ReloadScenarios(data); err != nil {
		return fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}
	return nil
}

func buildSnapshot(q *Questionnaire, scenarioYAML []byte) (*Snapshot, error) {
	var file scenarioFile
	if err := yaml.Unmarshal(scenarioYAML, &file); err != nil {
		return nil, fmt.Errorf("invalid scenario yaml: %w", err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario catalog is empty")
	}

	snap := &Snapshot{
		Questionnaire:  q,
		CatalogVersion: file.Version,
		scenarios:      make(map[string]models.Scenario, len(file.Scenarios)),
		scenarioOrder:  make([]string, 0, len(file.Scenarios)),
	}
	for i, sc := range file.Scenarios {
		if sc.ScenarioID == "" {
			return nil, fmt.Errorf("scenario[%d]: missing scenario_id", i)
		}
		if _, dup := snap.scenarios[sc.ScenarioID]; dup {
			return nil, fmt.Errorf("scenario[%d]: duplicate scenario_id %s", i, sc.ScenarioID)
		}
		switch sc.ScenarioCategory {
		case models.ScenarioCategoryHistorical, models.ScenarioCategoryHypothetical, models.ScenarioCategoryRegulatory:
		default:
			return nil, fmt.Errorf("scenario %s: unknown category %q", sc.ScenarioID, sc.ScenarioCategory)
		}
		// Sector shock keys are matched against normalized holding sectors
		if len(sc.SectorShocks) > 0 {
			shocks := make(map[string]float64, len(sc.SectorShocks))
			for sector, pct := range sc.SectorShocks {
				shocks[NormalizeSector(sector)] = pct
			}
			sc.SectorShocks = shocks
		}
		snap.scenarios[sc.ScenarioID] = sc
		snap.scenarioOrder = append(snap.scenarioOrder, sc.ScenarioID)
	}
	return snap, nil
}
