package catalog

import (
	"context"
	"fmt"

	"catalog-sync/core/source"
	"catalog-sync/core/syncer"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Service runs catalog synchronization on demand. Concurrent triggers
// for the same scope are collapsed into a single run; callers blocked
// on an in-flight run receive its summary.
type Service struct {
	engine *syncer.Engine
	logger *zap.Logger
	group  singleflight.Group
}

// NewService creates a new catalog service.
func NewService(engine *syncer.Engine, logger *zap.Logger) *Service {
	return &Service{engine: engine, logger: logger}
}

// Kinds returns the kinds the engine syncs, in dependency order.
func (s *Service) Kinds() []source.Kind {
	return s.engine.Kinds()
}

// SyncAll runs a full sync across every kind.
func (s *Service) SyncAll(ctx context.Context, opts syncer.Options) (*syncer.RunSummary, error) {
	key := fmt.Sprintf("all|%d|%t", opts.Limit, opts.DeleteMode)
	v, err, shared := s.group.Do(key, func() (any, error) {
		return s.engine.SyncAll(ctx, opts)
	})
	if shared {
		s.logger.Info("Joined in-flight full sync")
	}
	if err != nil {
		return nil, err
	}
	return v.(*syncer.RunSummary), nil
}

// SyncKind runs a sync for a single kind.
func (s *Service) SyncKind(ctx context.Context, kind source.Kind, opts syncer.Options) (*syncer.RunSummary, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown kind: %s", kind)
	}
	key := fmt.Sprintf("%s|%d|%t", kind, opts.Limit, opts.DeleteMode)
	v, err, shared := s.group.Do(key, func() (any, error) {
		return s.engine.SyncKind(ctx, kind, opts)
	})
	if shared {
		s.logger.Info("Joined in-flight sync", zap.String("kind", string(kind)))
	}
	if err != nil {
		return nil, err
	}
	return v.(*syncer.RunSummary), nil
}
