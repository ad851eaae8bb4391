package interfaces

import (
	"go-gql-cache/internal/models"
)

//go:generate mockgen -package=mock -source=keybuilder.go -destination=mock/keybuilder.go

// KeyBuilder canonizes key descriptors into deterministic cache keys
type KeyBuilder interface {
	Build(d *models.KeyDescriptor) (string, error)
}
