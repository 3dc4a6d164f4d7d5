package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"
	"langpedia/internal/domain"
)

// SeedCatalog upserts items into the languages table, keeping their slice order as position.
func SeedCatalog(ctx context.Context, db bun.IDB, items []domain.CatalogItem) error {
	for i, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshal language %s: %w", item.ID, err)
		}
		_, err = db.ExecContext(ctx,
			`INSERT INTO languages (id, position, data) VALUES (?, ?, ?::jsonb)
			 ON CONFLICT (id) DO UPDATE SET position=EXCLUDED.position, data=EXCLUDED.data`,
			item.ID, i, string(data))
		if err != nil {
			return fmt.Errorf("insert language %s: %w", item.ID, err)
		}
	}
	return nil
}
