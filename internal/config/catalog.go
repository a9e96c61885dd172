package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/studyslots/internal/domain"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog is wrapped by every catalog validation failure.
var ErrInvalidCatalog = errors.New("invalid slot catalog")

type catalogFile struct {
	Slots []slotEntry `yaml:"slots"`
}

type slotEntry struct {
	Key      string `yaml:"key"`
	Name     string `yaml:"name"`
	Capacity int    `yaml:"capacity"`
	Start    int    `yaml:"start"`
	End      int    `yaml:"end"`
}

// LoadCatalog returns the slot catalog at url, or the built-in catalog when
// url is empty.
func LoadCatalog(ctx context.Context, fs afs.Service, url string) (domain.SlotCatalog, error) {
	if url == "" {
		return domain.DefaultCatalog(), nil
	}
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("reading slot catalog %s: %w", url, err)
	}
	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return catalog, nil
}

// ParseCatalog decodes and validates a YAML catalog document. Slot order in
// the document is the catalog order.
func ParseCatalog(data []byte) (domain.SlotCatalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	catalog := make(domain.SlotCatalog, 0, len(f.Slots))
	for _, e := range f.Slots {
		name := strings.TrimSpace(e.Name)
		key := strings.TrimSpace(e.Key)
		if name == "" && key != "" {
			name = strings.ToUpper(key[:1]) + key[1:]
		}
		catalog = append(catalog, domain.Slot{
			Key:         domain.SlotKey(key),
			Name:        name,
			CapacityMin: e.Capacity,
			StartHour:   e.Start,
			EndHour:     e.End,
		})
	}
	if err := ValidateCatalog(catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// ValidateCatalog checks that a catalog has at least one slot, unique
// non-empty keys, positive capacities, and hours with 0 <= start < end <= 24.
func ValidateCatalog(catalog domain.SlotCatalog) error {
	if len(catalog) == 0 {
		return fmt.Errorf("%w: no slots defined", ErrInvalidCatalog)
	}
	seen := make(map[domain.SlotKey]bool, len(catalog))
	for i, s := range catalog {
		if s.Key == "" {
			return fmt.Errorf("%w: slot %d has no key", ErrInvalidCatalog, i)
		}
		if seen[s.Key] {
			return fmt.Errorf("%w: duplicate slot key %q", ErrInvalidCatalog, s.Key)
		}
		seen[s.Key] = true
		if s.CapacityMin <= 0 {
			return fmt.Errorf("%w: slot %q capacity must be positive, got %d", ErrInvalidCatalog, s.Key, s.CapacityMin)
		}
		if s.StartHour < 0 || s.EndHour > 24 || s.StartHour >= s.EndHour {
			return fmt.Errorf("%w: slot %q hours %d-%d out of range", ErrInvalidCatalog, s.Key, s.StartHour, s.EndHour)
		}
	}
	return nil
}
