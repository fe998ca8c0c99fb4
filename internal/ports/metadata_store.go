package ports

import "github.com/101Room/berezin-dicts/internal/domain"

type MetadataStore interface {
	Lookup(filePath string) (domain.Metadata, error)
}
