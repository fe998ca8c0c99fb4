// Package inifile resolves per-file dictionary metadata from the
// descriptions.cfg descriptor colocated with the source files.
package inifile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/101Room/berezin-dicts/internal/domain"
	"github.com/101Room/berezin-dicts/internal/ports"
	"github.com/go-ini/ini"
)

// DescriptorFileName is the sidecar file holding one section per source
// file, keyed by base name.
const DescriptorFileName = "descriptions.cfg"

type Store struct{}

var _ ports.MetadataStore = Store{}

func (Store) Lookup(filePath string) (domain.Metadata, error) {
	descriptorPath := filepath.Join(filepath.Dir(filePath), DescriptorFileName)

	cfg, err := ini.Load(descriptorPath)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("%w: load %s: %v", domain.ErrMetadataMissing, descriptorPath, err)
	}

	sectionName := filepath.Base(filePath)
	section, err := cfg.GetSection(sectionName)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("%w: %s has no section %q", domain.ErrMetadataMissing, descriptorPath, sectionName)
	}

	meta := domain.Metadata{
		Name:        strings.TrimSpace(section.Key("name").String()),
		Description: strings.TrimSpace(section.Key("description").String()),
	}
	if meta.Name == "" {
		return domain.Metadata{}, fmt.Errorf("%w: section %q in %s has no name", domain.ErrMetadataMissing, sectionName, descriptorPath)
	}

	return meta, nil
}
