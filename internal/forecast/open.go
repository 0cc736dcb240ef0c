package forecast

import (
	"fmt"
	"time"

	"steel-procurement/internal/config"
)

// Open builds the Source selected by cfg. The returned func releases its resources.
func Open(cfg config.ForecastConfig) (Source, func(), error) {
	switch cfg.Source {
	case config.SourceFile:
		src, err := LoadFile(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		return src, func() {}, nil
	case config.SourceRemote:
		cache := NewCache(time.Duration(cfg.CacheTTLSeconds) * time.Second)
		client := NewClient(cfg.BaseURL, cfg.APIKey, time.Duration(cfg.TimeoutSeconds)*time.Second, cache)
		return client, cache.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown forecast source %q", cfg.Source)
	}
}
