package repository

import "context"

// Repository answers which stored images are still in use
type Repository interface {
	// ReferencedURLs returns every image URL referenced by users, markets, products and templates
	ReferencedURLs(ctx context.Context) ([]string, error)
}
