package template

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"handwerk/portal_backend/internal/infra/db/postgres"
)

// Template is a saved offer starting point. The catalog is read-only from
// the engine's point of view; templates are managed elsewhere.
type Template struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Title     string        `json:"title"`
	Intro     string        `json:"intro"`
	TaxRate   float64       `json:"tax_rate"`
	Positions []RawPosition `json:"positions"`
}

type Catalog struct {
	db *postgres.DB
}

func NewCatalog(db *postgres.DB) *Catalog {
	return &Catalog{db: db}
}

func (c *Catalog) List(ctx context.Context) ([]Template, error) {
	rows, err := c.db.Pool.Query(ctx,
		`SELECT id, name, title, intro, tax_rate, positions
		   FROM offer_templates
		  ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		var t Template
		var positions []byte
		if err := rows.Scan(&t.ID, &t.Name, &t.Title, &t.Intro, &t.TaxRate, &positions); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		if len(positions) > 0 {
			if err := json.Unmarshal(positions, &t.Positions); err != nil {
				// a template with broken rows still lists; rows import as empty
				t.Positions = nil
			}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
