package generator

import "errors"

// Option configures a Config via the functional-options pattern.
type Option func(*Config) error

// Config holds every generator setting. Build one via NewConfig(opts...).
type Config struct {
	Header    string
	Package   string
	OutDir    string
	Workers   int
	Features  map[string]bool
}

// WithHeader sets the comment header written at the top of every
// generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPackage sets the root Go import path generated packages nest under,
// e.g. "github.com/org/project/model".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", pkg, "must not be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithOutDir sets the filesystem directory generated files are written
// under.
func WithOutDir(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("OutDir", dir, "must not be empty")
		}
		c.OutDir = dir
		return nil
	}
}

// WithWorkers bounds how many files are generated concurrently.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithFeature enables or disables a named Feature.
func WithFeature(name string, enabled bool) Option {
	return func(c *Config) error {
		c.Features[name] = enabled
		return nil
	}
}

// Apply applies opts in order, stopping at (and returning) the first
// error.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies every opt, collecting all errors via errors.Join
// instead of stopping at the first one.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig builds a Config with defaults, then applies opts.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Workers:  4,
		Features: map[string]bool{FeatureRootAliases.Name: true},
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if c.Package == "" {
		return nil, NewConfigError("Package", "", "required")
	}
	return c, nil
}

// enabled reports whether the named feature is on.
func (c *Config) enabled(name string) bool { return c.Features[name] }
