package index

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/kass/go-quake-geo/pkg/models"
)

// indexData is the serializable form of a SiteIndex.
type indexData struct {
	Sites []models.Site
	Count int64
}

// SaveToFile writes the indexed sites to a gob-encoded file.
func (x *SiteIndex) SaveToFile(filename string) error {
	x.mu.RLock()
	defer x.mu.RUnlock()

	data := indexData{
		Sites: x.all(),
		Count: x.itemCount.Load(),
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	return nil
}

// LoadFromFile replaces the contents of the index with sites read from
// a gob-encoded file written by SaveToFile.
func (x *SiteIndex) LoadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var data indexData
	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return fmt.Errorf("failed to decode index: %w", err)
	}

	x.Clear()
	if err := x.IndexSites(data.Sites); err != nil {
		return fmt.Errorf("failed to index sites: %w", err)
	}
	return nil
}
