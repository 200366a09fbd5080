package rate

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const syncCatalogTimeout = 30 * time.Second

type CatalogPopulator interface {
	PopulateCurrencyCatalog(ctx context.Context) (int, error)
}

// SyncCatalog refreshes the currency catalog from the provider once.
func SyncCatalog(ctx context.Context, execID string, catalog CatalogPopulator) error {
	jobCtx, cancel := context.WithTimeout(ctx, syncCatalogTimeout)
	defer cancel()

	started := time.Now()
	n, err := catalog.PopulateCurrencyCatalog(jobCtx)
	if err != nil {
		return fmt.Errorf("failed to populate currency catalog: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"exec_id":    execID,
		"currencies": n,
		"took":       time.Since(started).String(),
	}).Info("Currency catalog synced")
	return nil
}
