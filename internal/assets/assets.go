// Package assets embeds the default fitting database and the demo room.
package assets

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/RoomFit/internal/catalog"
	"github.com/piwi3910/RoomFit/internal/model"
)

//go:embed fittings.xml
var fittingsXML []byte

//go:embed demo_room.yaml
var demoRoomYAML []byte

// Scenario is a room together with the fittings to place in it.
type Scenario struct {
	model.RoomSpec `yaml:",inline"`
	Order          []string `yaml:"order" json:"order"`
}

// FittingDatabaseXML returns a copy of the embedded fitting database.
func FittingDatabaseXML() []byte {
	return append([]byte(nil), fittingsXML...)
}

// DefaultCatalog parses the embedded fitting database.
func DefaultCatalog() (*model.Catalog, error) {
	c, err := catalog.Parse(fittingsXML, catalog.FormatXML)
	if err != nil {
		return nil, fmt.Errorf("embedded fitting database: %w", err)
	}
	return c, nil
}

// DemoScenario returns the living room demo: a 5 x 4 m room with one door,
// four windows and eight fittings.
func DemoScenario() (Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(demoRoomYAML, &s); err != nil {
		return s, fmt.Errorf("embedded demo room: %w", err)
	}
	return s, nil
}
