package tmsim

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/tmsim/internal/compiler"
	"github.com/aretw0/tmsim/pkg/document"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/ports"
)

// Version is the converter release. It is part of every cache key.
const Version = "0.4.0"

// Converter is the high-level entry point of the library.
// It wraps the compiler and the document encoders and adds caching and hooks.
// A Converter is safe for concurrent use.
type Converter struct {
	logger     *slog.Logger
	hooks      domain.LifecycleHooks
	cache      ports.DocumentCache
	collectAll bool
}

// Option defines a functional option for configuring the Converter.
type Option func(*Converter)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Converter) {
		c.hooks = hooks
	}
}

// WithCache stores encoded documents so repeated sources skip compilation.
func WithCache(cache ports.DocumentCache) Option {
	return func(c *Converter) {
		c.cache = cache
	}
}

// WithCollectAll reports every validation error instead of the first one.
func WithCollectAll() Option {
	return func(c *Converter) {
		c.collectAll = true
	}
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Convert parses and validates a machine description.
// It is a pure function of src: no converter state is involved.
func Convert(src string) (*domain.Machine, error) {
	return compiler.Compile(src)
}

func (c *Converter) compilerOptions() []compiler.Option {
	opts := []compiler.Option{compiler.WithLogger(c.logger)}
	if c.collectAll {
		opts = append(opts, compiler.WithCollectAll())
	}
	return opts
}

// Convert parses and validates src.
func (c *Converter) Convert(ctx context.Context, src string) (*domain.Machine, error) {
	start := time.Now()
	m, err := compiler.Compile(src, c.compilerOptions()...)
	c.emitConvert(ctx, start, "", m, 0, err)
	return m, err
}

// Validate reports every problem in src. A nil slice means the source is valid.
func (c *Converter) Validate(ctx context.Context, src string) []error {
	_, err := compiler.Compile(src, compiler.WithLogger(c.logger), compiler.WithCollectAll())
	return domain.Errors(err)
}

// ConvertAndEncode converts src and encodes it, consulting the cache when one is set.
func (c *Converter) ConvertAndEncode(ctx context.Context, src string, format document.Format) ([]byte, error) {
	key := CacheKey(src, format)
	if data, ok := c.lookup(ctx, key); ok {
		return data, nil
	}

	start := time.Now()
	m, err := compiler.Compile(src, c.compilerOptions()...)
	if err != nil {
		c.emitConvert(ctx, start, format, nil, 0, err)
		return nil, err
	}

	data, err := document.Marshal(m, format)
	c.emitConvert(ctx, start, format, m, len(data), err)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, data); err != nil {
			c.logger.Warn("failed to cache document", "key", key, "error", err)
		}
	}
	return data, nil
}

func (c *Converter) lookup(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}

	data, err := c.cache.Get(ctx, key)
	hit := err == nil
	if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
		c.logger.Warn("document cache unavailable", "key", key, "error", err)
	}
	if c.hooks.OnCacheLookup != nil {
		c.hooks.OnCacheLookup(ctx, &domain.CacheEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventCacheLookup},
			Key:       key,
			Hit:       hit,
		})
	}
	c.logger.Debug("cache lookup", "key", key, "hit", hit)
	return data, hit
}

func (c *Converter) emitConvert(ctx context.Context, start time.Time, format document.Format, m *domain.Machine, size int, err error) {
	rules := 0
	if m != nil {
		rules = len(m.Rules())
	}
	elapsed := time.Since(start)

	if err != nil {
		c.logger.Debug("conversion failed", "kind", domain.ErrorKind(err), "error", err)
	} else {
		c.logger.Debug("conversion finished", "rules", rules, "format", string(format), "duration", elapsed)
	}

	if c.hooks.OnConvert != nil {
		c.hooks.OnConvert(ctx, &domain.ConversionEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventConvert},
			Format:    string(format),
			Duration:  elapsed,
			Rules:     rules,
			Bytes:     size,
			Err:       err,
		})
	}
}

// CacheKey derives the cache key of a source rendered in format.
func CacheKey(src string, format document.Format) string {
	h := sha256.New()
	io.WriteString(h, Version)
	h.Write([]byte{0})
	io.WriteString(h, string(format))
	h.Write([]byte{0})
	io.WriteString(h, src)
	return hex.EncodeToString(h.Sum(nil))
}
