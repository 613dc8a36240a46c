package obstacle

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadCatalog decodes and validates a TOML obstacle catalog
func LoadCatalog(r io.Reader) (Catalog, error) {
	var doc catalogDTO
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %s", ErrMalformedObstacleType, undecoded[0])
	}

	catalog := make(Catalog, 0, len(doc.Obstacles))
	for _, d := range doc.Obstacles {
		catalog = append(catalog, d.toType())
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// LoadCatalogFile reads a catalog from disk
func LoadCatalogFile(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	catalog, err := LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}
