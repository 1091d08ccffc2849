package store

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/simp-lee/storeadmin/internal/domain"
)

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// Backend is what every store backend offers: record collections plus
// singleton documents.
type Backend interface {
	domain.CollectionStore
	domain.DocumentStore
}

// Options selects and configures a backend.
type Options struct {
	Backend string
	Prefix  string
	// DB is required by the local backend.
	DB     *gorm.DB
	Remote RemoteConfig
	Logger *slog.Logger
	Now    func() time.Time
}

// New builds the backend named by opts.Backend.
func New(opts Options) (Backend, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return NewLocal(NewMemoryKV(), opts.Prefix, localOptions(opts)...), nil
	case BackendLocal:
		kv, err := NewGormKV(opts.DB)
		if err != nil {
			return nil, fmt.Errorf("local backend: %w", err)
		}
		return NewLocal(kv, opts.Prefix, localOptions(opts)...), nil
	case BackendRemote:
		return NewRemote(opts.Remote)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", opts.Backend)
	}
}

func localOptions(opts Options) []LocalOption {
	var out []LocalOption
	if opts.Logger != nil {
		out = append(out, WithLogger(opts.Logger))
	}
	if opts.Now != nil {
		out = append(out, WithClock(opts.Now))
	}
	return out
}
