package pdf

import "handwerk/portal_backend/internal/domain/offer"

type Generator interface {
	Generate(d *offer.Draft) ([]byte, error)
}
