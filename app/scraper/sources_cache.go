package scraper

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Source is one RSS feed definition loaded from a YAML file in the
// sources directory.
type Source struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Settings struct {
		Enabled  bool `yaml:"enabled"`
		MaxItems int  `yaml:"max_items"`
	} `yaml:"settings"`
}

type SourcesCache struct {
	sourcesDir string
	cache      map[string]*Source
	mu         sync.RWMutex
}

func NewSourcesCache(sourcesDir string) *SourcesCache {
	return &SourcesCache{
		sourcesDir: sourcesDir,
		cache:      make(map[string]*Source),
	}
}

func (sc *SourcesCache) Run() error {
	if _, err := os.Stat(sc.sourcesDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(sc.sourcesDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		// Derive source name from filename (remove .yml extension)
		fileName := filepath.Base(file)
		sourceName := fileName[:len(fileName)-4]

		source, err := sc.LoadSource(sourceName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Source loaded", "source", sourceName, "enabled", source.Settings.Enabled, "max_items", source.Settings.MaxItems)
	}

	return nil
}

func (sc *SourcesCache) LoadSource(sourceName string) (*Source, error) {
	sourceFile := filepath.Join(sc.sourcesDir, sourceName+".yml")

	data, err := os.ReadFile(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var source Source
	if err := yaml.Unmarshal(data, &source); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if source.Name == "" {
		source.Name = sourceName
	}
	if source.Settings.MaxItems == 0 {
		source.Settings.MaxItems = 5
	}

	if source.URL == "" {
		return nil, fmt.Errorf("invalid source %s: feed URL is required", sourceFile)
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cache[sourceName] = &source

	return &source, nil
}

func (sc *SourcesCache) GetEnabledSources() []*Source {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	var enabled []*Source
	for _, s := range sc.cache {
		if s.Settings.Enabled {
			enabled = append(enabled, s)
		}
	}
	return enabled
}

func (sc *SourcesCache) GetSourceCount() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.cache)
}
