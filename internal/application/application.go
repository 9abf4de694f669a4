package application

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/divi-project/bitcore-node-divi/internal/config"
	"github.com/divi-project/bitcore-node-divi/internal/scaffold"
)

// Locator finds the node configuration from an absolute directory, either by
// ascending (Find) or by checking a single directory (FindIn).
type Locator interface {
	Find(cwd string) (scaffold.Result, bool, error)
	FindIn(dir string) (scaffold.Result, bool, error)
}

// Option customises an App.
type Option func(*App)

// WithLocator overrides the default config locator (primarily for tests).
func WithLocator(locator Locator) Option {
	return func(a *App) {
		a.locator = locator
	}
}

// App encapsulates the application dependencies.
type App struct {
	cfg     config.Config
	locator Locator
	logger  *zap.Logger
	out     io.Writer
}

// output is the rendered shape of a located configuration.
type output struct {
	Path   string         `json:"path" yaml:"path"`
	Config map[string]any `json:"config" yaml:"config"`
}

// New initializes the application from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, out io.Writer, opts ...Option) (*App, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if out == nil {
		return nil, fmt.Errorf("output writer is required")
	}

	app := &App{
		cfg:     cfg,
		locator: scaffold.Finder{},
		logger:  logger,
		out:     out,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app, nil
}

// Locate runs the upward search from the configured start directory. When
// nothing is found and home fallback is enabled, the home directory is checked
// on its own, without ascending from it.
func (a *App) Locate() (scaffold.Result, error) {
	a.logger.Debug("searching for node configuration", zap.String("start_dir", a.cfg.StartDir))

	res, ok, err := a.locator.Find(a.cfg.StartDir)
	if err != nil {
		return scaffold.Result{}, fmt.Errorf("locate config from %s: %w", a.cfg.StartDir, err)
	}
	if ok {
		a.logger.Info("node configuration found", zap.String("path", res.Path))
		return res, nil
	}

	if !a.cfg.HomeFallback {
		return scaffold.Result{}, fmt.Errorf("%w in %s or any parent directory", ErrConfigNotFound, a.cfg.StartDir)
	}

	a.logger.Debug("falling back to home directory", zap.String("home_dir", a.cfg.HomeDir))
	res, ok, err = a.locator.FindIn(a.cfg.HomeDir)
	if err != nil {
		return scaffold.Result{}, fmt.Errorf("locate config in %s: %w", a.cfg.HomeDir, err)
	}
	if !ok {
		return scaffold.Result{}, fmt.Errorf("%w in %s, any parent directory, or %s", ErrConfigNotFound, a.cfg.StartDir, a.cfg.HomeDir)
	}

	a.logger.Info("node configuration found in home directory", zap.String("path", res.Path))
	return res, nil
}

// Run locates the configuration and writes it to the output in the configured format.
func (a *App) Run() error {
	res, err := a.Locate()
	if err != nil {
		return err
	}
	return a.render(output{Path: res.Path, Config: res.Config})
}

func (a *App) render(doc output) error {
	switch a.cfg.Output {
	case config.OutputYAML:
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	}
}
