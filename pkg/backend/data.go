package backend

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-roster/pkg/record"
)

//go:embed data/personas.yaml
var dataFS embed.FS

const defaultSeedPath = "data/personas.yaml"

// Player is one seed entry. Field names mirror the JSON keys the front-end
// reads.
type Player struct {
	ID               string      `yaml:"id" json:"id"`
	Nombre           string      `yaml:"nombre" json:"nombre"`
	Apellidos        string      `yaml:"apellidos" json:"apellidos"`
	Posicion         string      `yaml:"posicion" json:"posicion"`
	Equipo           string      `yaml:"equipo" json:"equipo"`
	Peso             float64     `yaml:"peso" json:"peso"`
	Altura           float64     `yaml:"altura" json:"altura"`
	NumTrakles       int         `yaml:"numTrakles" json:"numTrakles"`
	HistorialEquipos []string    `yaml:"historialEquipos" json:"historialEquipos"`
	Zona             string      `yaml:"zona" json:"zona"`
	Fecha            record.Date `yaml:"fecha" json:"fecha"`
}

// Record converts the seed entry into the wire shape served by the API.
func (p Player) Record() (record.Record, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return record.Record{}, fmt.Errorf("backend: encode player %q: %w", p.ID, err)
	}
	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return record.Record{}, fmt.Errorf("backend: decode player %q: %w", p.ID, err)
	}
	return record.Record{Ref: record.Ref{Inner: record.RefID{ID: p.ID}}, Data: data}, nil
}

var (
	defaultOnce    sync.Once
	defaultRecords []record.Record
	defaultErr     error
)

// DefaultRecords returns a copy of the embedded roster.
func DefaultRecords() ([]record.Record, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultSeedPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		defaultRecords, defaultErr = LoadRecords(f)
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]record.Record{}, defaultRecords...), nil
}

// LoadRecords decodes a YAML list of players. Identifiers must be present and
// unique.
func LoadRecords(r io.Reader) ([]record.Record, error) {
	if r == nil {
		return nil, errors.New("backend: missing reader")
	}

	var players []Player
	if err := yaml.NewDecoder(r).Decode(&players); err != nil {
		if errors.Is(err, io.EOF) {
			return []record.Record{}, nil
		}
		return nil, fmt.Errorf("backend: decode seed: %w", err)
	}

	seen := make(map[string]struct{}, len(players))
	records := make([]record.Record, 0, len(players))
	for i, p := range players {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("backend: player %d has no id", i)
		}
		if _, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("backend: duplicate player id %q", p.ID)
		}
		seen[p.ID] = struct{}{}

		rec, err := p.Record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
