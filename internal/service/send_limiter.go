package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SendLimiter limita cuántos mensajes puede enviar un visitante por ventana.
// Se consulta en la capa HTTP antes de invocar al ViewModel.
type SendLimiter interface {
	Allow(ctx context.Context, key string) bool
}

type unlimitedSendLimiter struct{}

// NewUnlimitedSendLimiter deja pasar todo; es el valor por defecto.
func NewUnlimitedSendLimiter() SendLimiter {
	return unlimitedSendLimiter{}
}

func (unlimitedSendLimiter) Allow(context.Context, string) bool {
	return true
}

type memorySendLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	max       int
	hits      map[string][]time.Time
	lastSweep time.Time
	now       func() time.Time
}

// NewMemorySendLimiter crea un rate limiter en memoria con ventana deslizante.
func NewMemorySendLimiter(window time.Duration, max int) SendLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &memorySendLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

func (l *memorySendLimiter) Allow(_ context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now().UTC()
	cutoff := now.Add(-l.window)
	if now.Sub(l.lastSweep) >= l.window {
		l.lastSweep = now
		for k, entries := range l.hits {
			if kept := pruneHits(entries, cutoff); len(kept) == 0 {
				delete(l.hits, k)
			} else {
				l.hits[k] = kept
			}
		}
	}

	kept := pruneHits(l.hits[key], cutoff)
	if len(kept) >= l.max {
		l.hits[key] = kept
		return false
	}
	l.hits[key] = append(kept, now)
	return true
}

// pruneHits descarta in situ los envíos fuera de la ventana.
func pruneHits(entries []time.Time, cutoff time.Time) []time.Time {
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	return kept
}

const redisSendAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type redisSendLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

// NewRedisSendLimiter usa una ventana fija en Redis. Ante errores de Redis
// deja pasar el envío.
func NewRedisSendLimiter(client *redis.Client, window time.Duration, max int) SendLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisSendLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "csvchat:send:",
	}
}

func (l *redisSendLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	normalizedKey := strings.TrimSpace(key)
	if normalizedKey == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	count, err := l.client.Eval(ctx, redisSendAllowScript, []string{l.prefix + normalizedKey}, seconds).Int()
	if err != nil {
		return true
	}
	return count <= l.max
}
