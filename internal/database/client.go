package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"galeana/configs"

	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
)

var ErrConnect = errors.New("database: connect failed")

// Factory builds a client handle from a project url and an api key.
type Factory func(url, key string, options *supabase.ClientOptions) (*supabase.Client, error)

var DefaultFactory Factory = supabase.NewClient

// Connector builds Supabase client handles. It keeps no reference to the
// handles it returns.
type Connector struct {
	factory Factory
	options supabase.ClientOptions
	logger  *zap.SugaredLogger
}

type Option func(*Connector)

func WithSchema(schema string) Option {
	return func(c *Connector) { c.options.Schema = schema }
}

func WithHeaders(headers map[string]string) Option {
	return func(c *Connector) {
		if c.options.Headers == nil {
			c.options.Headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			c.options.Headers[k] = v
		}
	}
}

func NewConnector(factory Factory, logger *zap.SugaredLogger, opts ...Option) *Connector {
	if factory == nil {
		factory = DefaultFactory
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	c := &Connector{factory: factory, logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect hands url and key to the factory exactly as given. Nothing is
// checked here; see ConnectConfig for the validated path.
func (c *Connector) Connect(url, key string) (*supabase.Client, error) {
	return c.connect(url, key, c.options)
}

func (c *Connector) connect(url, key string, opts supabase.ClientOptions) (*supabase.Client, error) {
	client, err := c.factory(url, key, &opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	c.logger.Infow("supabase client created", "host", hostOf(url), "key", maskKey(key))
	return client, nil
}

// ConnectConfig validates cfg before connecting with its schema.
func (c *Connector) ConnectConfig(cfg *configs.Config) (*supabase.Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", configs.ErrMissingValue)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := c.options
	if cfg.Schema != "" {
		opts.Schema = cfg.Schema
	}
	return c.connect(cfg.SupabaseURL, cfg.SupabaseKey, opts)
}

// FromEnvironment loads envFile into the process environment if it exists,
// reads SUPABASE_URL and SUPABASE_KEY and connects with whatever they hold.
func (c *Connector) FromEnvironment(ctx context.Context, envFile string) (*supabase.Client, error) {
	found, err := configs.LoadEnvFile(envFile)
	if err != nil {
		return nil, err
	}
	if !found {
		c.logger.Debugw("settings file not found, using process environment", "path", envFile)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.Connect(os.Getenv(configs.EnvURL), os.Getenv(configs.EnvKey))
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "invalid"
	}
	return u.Host
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****"
}
