// Package cache implementa el caché de resultados de analítica sobre Redis.
//
// Las claves llevan un número de versión global: invalidar es incrementar la versión,
// con lo que todas las entradas anteriores quedan huérfanas hasta que expira su TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const versionKey = "stock-analytics:version"

// AnalyticsCache caché versionado. Con client nil se comporta como passthrough (siempre llama al loader).
type AnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewAnalyticsCache construye el caché. client puede ser nil (caché desactivado).
func NewAnalyticsCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *AnalyticsCache {
	return &AnalyticsCache{client: client, ttl: ttl, log: log}
}

// Version devuelve la versión vigente, inicializándola en 1 si no existe.
func (c *AnalyticsCache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		// SETNX: si otro proceso la inicializó primero se respeta su valor.
		if err := c.client.SetNX(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, versionKey).Int64()
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// Key compone la clave versionada a partir de sus partes.
func (c *AnalyticsCache) Key(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(append([]string{"stock-analytics"}, parts...), ":")
	if c == nil || c.client == nil {
		return joined, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:v%d", joined, ver), nil
}

// FetchJSON carga dest desde el caché o, si no está, lo puebla con loader.
// Una caída de Redis no falla la consulta: se registra y se responde con el loader.
// Los errores del loader se devuelven tal cual.
func (c *AnalyticsCache) FetchJSON(ctx context.Context, dest any, loader func(context.Context) (any, error), parts ...string) error {
	if loader == nil {
		return errors.New("cache: loader requerido")
	}
	if c == nil || c.client == nil {
		return load(ctx, dest, loader)
	}

	key, err := c.Key(ctx, parts...)
	if err != nil {
		c.log.Warn().Err(err).Msg("cache: no se pudo leer la versión, consultando sin caché")
		return load(ctx, dest, loader)
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		if jerr := json.Unmarshal(payload, dest); jerr == nil {
			c.log.Debug().Str("key", key).Msg("cache hit")
			return nil
		}
		c.log.Warn().Str("key", key).Msg("cache: entrada corrupta, se recalcula")
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Str("key", key).Msg("cache: lectura fallida, consultando sin caché")
		return load(ctx, dest, loader)
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: serializar %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache: escritura fallida")
	}
	return json.Unmarshal(raw, dest)
}

// Invalidate incrementa la versión global; las entradas anteriores dejan de leerse.
func (c *AnalyticsCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, versionKey).Err()
}

// load ejecuta el loader y copia el resultado en dest pasando por JSON, igual que un hit.
func load(ctx context.Context, dest any, loader func(context.Context) (any, error)) error {
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
