package mkpub

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads .env-style files into the publishing properties.
// Missing files are skipped, properties set earlier win over file
// entries, earlier files win over later ones.
func (p *Publishing) LoadDotEnv(files ...string) error {
	for _, file := range files {
		f, err := os.Open(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return err
		}
		envMap, err := godotenv.Parse(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("env file %s: %w", file, err)
		}
		if p.props == nil {
			p.props = make(map[string]string, len(envMap))
		}
		for k, v := range envMap {
			if _, ok := p.props[k]; !ok {
				p.props[k] = v
			}
		}
	}
	return nil
}
