// Package staticcontent holds the hand-authored day-one modules served with
// zero latency before any generated content exists.
package staticcontent

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/alexanderramin/lumina/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed modules.yaml
var modulesYAML []byte

// Track names used as keys in modules.yaml.
const (
	TrackProductivity = "productivity"
	TrackBusiness     = "business"
	TrackProduct      = "product"
	TrackDeveloper    = "developer"
	TrackCXO          = "cxo"
	TrackArchitect    = "architect"
	TrackHR           = "hr"
)

var roleTracks = map[domain.Role]string{
	domain.RoleBusiness:  TrackBusiness,
	domain.RoleProduct:   TrackProduct,
	domain.RoleDeveloper: TrackDeveloper,
	domain.RoleCXO:       TrackCXO,
	domain.RoleArchitect: TrackArchitect,
	domain.RoleHR:        TrackHR,
}

// Table is a read-only lookup of day-one modules.
type Table struct {
	modules map[string]domain.DailyContent
}

// Load parses the embedded module set and checks every track is present
// and well formed.
func Load() (*Table, error) {
	return parse(modulesYAML)
}

// MustLoad is Load for package initialisation in main and tests.
func MustLoad() *Table {
	t, err := Load()
	if err != nil {
		panic(err)
	}
	return t
}

func parse(data []byte) (*Table, error) {
	var modules map[string]domain.DailyContent
	if err := yaml.Unmarshal(data, &modules); err != nil {
		return nil, fmt.Errorf("decoding static modules: %w", err)
	}
	for _, track := range []string{TrackProductivity, TrackBusiness, TrackProduct, TrackDeveloper, TrackCXO, TrackArchitect, TrackHR} {
		m, ok := modules[track]
		if !ok {
			return nil, fmt.Errorf("static modules: missing track %q", track)
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("static modules: track %q: %w", track, err)
		}
	}
	return &Table{modules: modules}, nil
}

// Lookup returns the canned module for day one. Any other day yields false.
// An objective mentioning productivity or personal efficiency wins over the
// role; unmatched roles get the business module. Expertise does not change
// the selection.
func (t *Table) Lookup(role domain.Role, day int, objective string, expertise int) (domain.DailyContent, bool) {
	if day != 1 {
		return domain.DailyContent{}, false
	}
	return t.modules[TrackFor(role, objective)].Clone(), true
}

// TrackFor resolves the day-one track for a role and objective.
func TrackFor(role domain.Role, objective string) string {
	obj := strings.ToLower(objective)
	if strings.Contains(obj, "productivity") || strings.Contains(obj, "personal") {
		return TrackProductivity
	}
	if track, ok := roleTracks[role]; ok {
		return track
	}
	return TrackBusiness
}
