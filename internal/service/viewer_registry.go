package service

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"csv-chat/internal/repository"
)

// DefaultViewerIdleTTL coincide con la vida por defecto de la cookie de visitante.
const DefaultViewerIdleTTL = 24 * time.Hour

type viewerEntry struct {
	vm       *ChatViewModel
	lastSeen atomic.Int64 // unix nanos
}

// ViewerRegistry guarda un ChatViewModel por visitante. Todo vive en memoria y
// se pierde al reiniciar el proceso. Los visitantes sin actividad durante
// idleTTL se descartan.
type ViewerRegistry struct {
	mu        sync.RWMutex
	logger    *zap.Logger
	seed      repository.Snapshot
	opts      ViewModelOptions
	idleTTL   time.Duration
	viewers   map[string]*viewerEntry
	lastSweep time.Time
	now       func() time.Time
}

func NewViewerRegistry(logger *zap.Logger, seed repository.Snapshot, opts ViewModelOptions, idleTTL time.Duration) *ViewerRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if idleTTL <= 0 {
		idleTTL = DefaultViewerIdleTTL
	}
	return &ViewerRegistry{
		logger:  logger,
		seed:    seed,
		opts:    opts,
		idleTTL: idleTTL,
		viewers: make(map[string]*viewerEntry),
		now:     time.Now,
	}
}

// Get devuelve el ViewModel del visitante y lo crea desde la semilla si no existe.
func (r *ViewerRegistry) Get(viewerID string) *ChatViewModel {
	viewerID = strings.TrimSpace(viewerID)
	now := r.now()

	r.mu.RLock()
	entry, ok := r.viewers[viewerID]
	due := now.Sub(r.lastSweep) >= r.sweepInterval()
	r.mu.RUnlock()
	if ok && !due {
		entry.lastSeen.Store(now.UnixNano())
		return entry.vm
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked(now)
	if entry, ok := r.viewers[viewerID]; ok {
		entry.lastSeen.Store(now.UnixNano())
		return entry.vm
	}
	entry = &viewerEntry{
		vm: NewChatViewModel(r.logger.With(zap.String("viewer_id", viewerID)), r.seed, r.opts),
	}
	entry.lastSeen.Store(now.UnixNano())
	r.viewers[viewerID] = entry
	r.logger.Info("viewer state created", zap.String("viewer_id", viewerID), zap.Int("viewers", len(r.viewers)))
	return entry.vm
}

func (r *ViewerRegistry) Forget(viewerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.viewers, strings.TrimSpace(viewerID))
}

func (r *ViewerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.viewers)
}

// El barrido corre como mucho una vez por minuto (o por idleTTL si es menor).
func (r *ViewerRegistry) sweepInterval() time.Duration {
	if r.idleTTL < time.Minute {
		return r.idleTTL
	}
	return time.Minute
}

func (r *ViewerRegistry) sweepLocked(now time.Time) {
	if now.Sub(r.lastSweep) < r.sweepInterval() {
		return
	}
	r.lastSweep = now
	cutoff := now.Add(-r.idleTTL).UnixNano()
	evicted := 0
	for id, entry := range r.viewers {
		if entry.lastSeen.Load() < cutoff {
			delete(r.viewers, id)
			evicted++
		}
	}
	if evicted > 0 {
		r.logger.Info("idle viewers evicted", zap.Int("evicted", evicted), zap.Int("viewers", len(r.viewers)))
	}
}
