package config

import (
	"fmt"
	"sync"

	"github.com/atomicstack/chestsync/internal/logging"
	"github.com/atomicstack/chestsync/internal/logging/events"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type fileConfig struct {
	App      App      `mapstructure:"app"`
	Logging  Logging  `mapstructure:"logging"`
	Features Features `mapstructure:"features"`
	Storage  Storage  `mapstructure:"storage"`
	Controls Controls `mapstructure:"controls"`
}

// ReadFile loads path over the built in defaults. The format follows the
// file extension.
func ReadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if fc.Storage.Kinds == nil {
		fc.Storage.Kinds = make(map[string]StorageOptions)
	}
	for kind, opts := range Default().Storage.Kinds {
		if _, ok := fc.Storage.Kinds[kind]; !ok {
			fc.Storage.Kinds[kind] = opts
		}
	}
	return Config{
		App:      fc.App,
		Logging:  fc.Logging,
		Features: fc.Features,
		Storage:  fc.Storage,
		Controls: fc.Controls,
		File:     path,
	}, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("app.width", d.App.Width)
	v.SetDefault("app.height", d.App.Height)
	v.SetDefault("app.world", d.App.World)
	v.SetDefault("app.viewports", d.App.Viewports)
	v.SetDefault("app.clear_backgrounds", d.App.ClearBackgrounds)
	v.SetDefault("app.tick", d.App.Tick)
	v.SetDefault("app.churn", d.App.Churn)

	v.SetDefault("logging.file", d.Logging.FilePath)
	v.SetDefault("logging.trace", d.Logging.Trace)

	v.SetDefault("features.verbose", d.Features.Verbose)
	v.SetDefault("features.search", d.Features.Search)
	v.SetDefault("features.categorize", d.Features.Categorize)
	v.SetDefault("features.sort", d.Features.Sort)
	v.SetDefault("features.sort_key", d.Features.SortKey)
	v.SetDefault("features.search_mode", d.Features.SearchMode)

	v.SetDefault("storage.default.resize", d.Storage.Default.Resize)
	v.SetDefault("storage.default.rows", d.Storage.Default.Rows)
	v.SetDefault("storage.default.filters", d.Storage.Default.Filters)
	v.SetDefault("storage.default.sorts", d.Storage.Default.Sorts)

	v.SetDefault("controls.scroll_up", d.Controls.ScrollUp)
	v.SetDefault("controls.scroll_down", d.Controls.ScrollDown)
	v.SetDefault("controls.scroll_page", d.Controls.ScrollPage)
}

// Watch reloads cfg whenever its file is written and hands the result to
// onChange. It does nothing when cfg has no file. Reload failures are logged
// and the previous configuration stays in effect.
func Watch(cfg Config, onChange func(Config)) error {
	if cfg.File == "" {
		return nil
	}
	v := viper.New()
	v.SetConfigFile(cfg.File)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("watch config %s: %w", cfg.File, err)
	}

	var mu sync.Mutex
	current := cfg
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		next, err := Reload(current)
		if err != nil {
			logging.Error(fmt.Errorf("reload config: %w", err))
			events.Config.Rejected(e.Name, err)
			return
		}
		current = next
		events.Config.Reloaded(e.Name, e.Op.String())
		onChange(next)
	})
	v.WatchConfig()
	return nil
}
