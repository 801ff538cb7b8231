package product

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// overlayFile is the shape of the optional user products file.
type overlayFile struct {
	Products []Product `yaml:"products"`
}

// Load returns the built-in table extended with definitions from the user
// overlay file at path, if one exists. Overlay entries with a code matching
// a built-in replace it; new codes are appended. A missing file yields the
// built-ins alone; a malformed file is an error the caller may log and
// ignore, since discovery works fine without the overlay.
func Load(path string) ([]Product, error) {
	table := Builtins()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return table, nil
		}
		return table, fmt.Errorf("failed to read products overlay: %w", err)
	}

	var overlay overlayFile
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return table, fmt.Errorf("failed to parse products overlay: %w", err)
	}

	byCode := make(map[string]int, len(table))
	for i, p := range table {
		byCode[p.Code] = i
	}

	for _, p := range overlay.Products {
		p = p.withDefaults()
		if !p.valid() {
			continue
		}
		if i, ok := byCode[p.Code]; ok {
			table[i] = p
			continue
		}
		byCode[p.Code] = len(table)
		table = append(table, p)
	}

	return table, nil
}
