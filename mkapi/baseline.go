package mkapi

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.yaml.in/yaml/v3"
)

// SaveBaseline writes the surface as the YAML baseline file at path,
// overwriting an earlier baseline in full.
func SaveBaseline(path string, sur Surface) error {
	raw, err := yaml.Marshal(sur)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0666)
}

// LoadBaseline reads a baseline written by [SaveBaseline]. A baseline that
// does not exist is an error: checking against nothing would approve any
// API, so the caller has to dump a baseline first.
func LoadBaseline(path string) (Surface, error) {
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf(
			"api baseline %s does not exist: dump a baseline before checking",
			path,
		)
	case err != nil:
		return nil, err
	}
	var sur Surface
	if err := yaml.Unmarshal(raw, &sur); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sur, nil
}
