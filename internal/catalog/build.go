package catalog

import (
	"log/slog"
	"slices"

	"github.com/jblaunch/jblaunch/internal/config"
	"github.com/jblaunch/jblaunch/internal/discovery"
	"github.com/jblaunch/jblaunch/internal/paths"
	"github.com/jblaunch/jblaunch/internal/product"
)

// FromSettings builds the catalog the way every entry point (CLI commands
// and the daemon) uses it: built-in product table plus user overlay, minus
// disabled products, scanning the platform roots plus configured extras.
func FromSettings(cfg config.Settings, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}

	products, err := product.Load(cfg.ProductsPath)
	if err != nil {
		// Overlay trouble is not fatal; built-ins still work.
		logger.Warn("ignoring products overlay", "path", cfg.ProductsPath, "error", err)
	}
	if len(cfg.DisabledProducts) > 0 {
		products = slices.DeleteFunc(products, func(p product.Product) bool {
			return slices.Contains(cfg.DisabledProducts, p.Code)
		})
	}

	roots := append(paths.JetBrainsConfigRoots(), cfg.ConfigRoots...)
	locator := discovery.NewLocator(roots, cfg.ToolboxScriptsDir, products, logger)

	return New(locator, Options{
		TTL:          cfg.ScanTTL,
		ShowBranches: cfg.ShowBranches,
		Logger:       logger,
	})
}
