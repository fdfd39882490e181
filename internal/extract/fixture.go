package extract

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/nest-agency/pitch-cli/internal/model"
)

// LoadRecordFromFile reads a YAML client record from the given path
// and normalizes it. A record without a client name is rejected, since
// every downstream prompt embeds the name.
func LoadRecordFromFile(path string) (model.ClientRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ClientRecord{}, eris.Wrap(err, "extract: read record file")
	}

	var r model.ClientRecord
	if err := yaml.Unmarshal(data, &r); err != nil {
		return model.ClientRecord{}, eris.Wrap(err, "extract: unmarshal record file")
	}

	r.Normalize()
	if r.Name == "" {
		return model.ClientRecord{}, eris.New("extract: record file has no client name")
	}

	return r, nil
}
