package cli

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aimcourse/ragdemo/internal/adapters/catalog"
	"github.com/aimcourse/ragdemo/internal/adapters/filewatcher"
	"github.com/aimcourse/ragdemo/internal/adapters/resolver"
	"github.com/aimcourse/ragdemo/internal/config"
	"github.com/aimcourse/ragdemo/internal/domain/ports"
	"github.com/aimcourse/ragdemo/internal/domain/usecases"
)

// runtime holds the wired components shared by the commands.
type runtime struct {
	cfg      config.Config
	store    *catalog.Store
	resolver ports.QueryResolver
}

// newRuntime loads the content catalog and builds the configured resolver.
func newRuntime(ctx context.Context, cfg config.Config) (*runtime, error) {
	store := catalog.NewStore(nil)
	if cfg.Content.Path != "" {
		loader := catalog.NewYAMLLoader()
		if !loader.Supports(cfg.Content.Path) {
			return nil, fmt.Errorf("config error: content.path %q: unsupported extension (want one of %s)",
				cfg.Content.Path, strings.Join(loader.SupportedExtensions(), ", "))
		}
		content := usecases.NewContentUseCase(loader, store)
		if err := content.Load(ctx, cfg.Content.Path); err != nil {
			return nil, err
		}
	}

	var qr ports.QueryResolver
	switch cfg.Resolver.Mode {
	case config.ModeRemote:
		qr = resolver.NewRemoteHTTPResolver(cfg.Resolver.Endpoint, cfg.Resolver.K, cfg.Timeout())
		log.Printf("[INFO] Using remote resolver at %s", cfg.Resolver.Endpoint)
	case config.ModeLocal:
		qr = resolver.NewLocalCannedResolver(store, cfg.Delay())
	default:
		return nil, fmt.Errorf("unsupported resolver mode %q", cfg.Resolver.Mode)
	}

	return &runtime{cfg: cfg, store: store, resolver: qr}, nil
}

// watchContent hot reloads the content file until ctx is done.
// It is a no-op without a content path or when watching is disabled.
func (r *runtime) watchContent(ctx context.Context) {
	if r.cfg.Content.Path == "" || !r.cfg.WatchContent() {
		return
	}
	loader := catalog.NewYAMLLoader()
	watcher, err := filewatcher.NewFSNotifyWatcher(loader.SupportedExtensions(), filewatcher.DefaultDebounce)
	if err != nil {
		log.Printf("[WARN] Content hot reload disabled: %v", err)
		return
	}
	content := usecases.NewContentUseCase(loader, r.store)
	go func() {
		defer watcher.Stop()
		if err := content.Watch(ctx, watcher, r.cfg.Content.Path); err != nil {
			log.Printf("[WARN] Content watch stopped: %v", err)
		}
	}()
	log.Printf("[INFO] Watching %s for changes", r.cfg.Content.Path)
}

// loadRuntime is the shared config + runtime step of the commands.
func loadRuntime(ctx context.Context, configPath string) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	return newRuntime(ctx, cfg)
}
