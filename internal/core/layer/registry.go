package layer

import (
	"sync"

	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

// Registry holds overlay definitions in display order.
type Registry struct {
	apiKey string
	logger ports.Logger

	mu     sync.RWMutex
	layers []Config
}

type RegistryDependencies struct {
	Config ports.ConfigProvider
	Logger ports.Logger
}

func NewRegistry(deps RegistryDependencies) (*Registry, error) {
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	weatherConfig := deps.Config.GetWeatherConfig()
	return &Registry{
		apiKey: weatherConfig.APIKey,
		logger: deps.Logger,
		layers: DefaultLayers(weatherConfig.TileBaseURL),
	}, nil
}

// List returns every layer in insertion order.
func (r *Registry) List() []Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Config, len(r.layers))
	copy(out, r.layers)
	return out
}

func (r *Registry) Get(id string) (Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.layers {
		if l.ID == id {
			return l, nil
		}
	}
	return Config{}, errors.NewNotFoundError("layer not found")
}

// Toggle sets the enabled flag. Unknown ids are ignored.
func (r *Registry) Toggle(id string, enabled bool) {
	r.update(id, func(l *Config) { l.Enabled = enabled })
}

// SetOpacity stores the value as given; the renderer deals with out-of-range values.
func (r *Registry) SetOpacity(id string, opacity float64) {
	r.update(id, func(l *Config) { l.Opacity = opacity })
}

func (r *Registry) update(id string, apply func(l *Config)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.layers {
		if r.layers[i].ID == id {
			apply(&r.layers[i])
			r.logger.Debug("Layer updated",
				ports.F("layer", id),
				ports.F("enabled", r.layers[i].Enabled),
				ports.F("opacity", r.layers[i].Opacity))
			return
		}
	}
	r.logger.Debug("Ignoring update for unknown layer", ports.F("layer", id))
}

// ApplyTimestamp appends the cache-busting token to every tile URL.
func (r *Registry) ApplyTimestamp(ts int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.layers {
		r.layers[i].TileURL = WithTimestamp(r.layers[i].TileURL, ts)
	}
}

// EnabledLayers returns what the map renders, with the credential filled in.
func (r *Registry) EnabledLayers() []Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Config, 0, len(r.layers))
	for _, l := range r.layers {
		if !l.Enabled {
			continue
		}
		l.TileURL = ResolveTileURL(l.TileURL, r.apiKey)
		out = append(out, l)
	}
	return out
}
