package config

import (
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/studyslots/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestParseCatalog_KeepsDocumentOrder(t *testing.T) {
	catalog, err := ParseCatalog([]byte(`
slots:
  - key: early
    name: Early bird
    capacity: 60
    start: 6
    end: 7
  - key: lunch
    capacity: 45
    start: 12
    end: 13
`))
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	assert.Equal(t, domain.SlotKey("early"), catalog[0].Key)
	assert.Equal(t, "Early bird", catalog[0].Name)
	assert.Equal(t, 60, catalog[0].CapacityMin)
	assert.Equal(t, "Lunch", catalog[1].Name, "name defaults to the capitalized key")
	assert.Equal(t, 12, catalog[1].StartHour)
	assert.Equal(t, 13, catalog[1].EndHour)
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"not yaml", "slots: [", ""},
		{"empty", "slots: []", "no slots"},
		{"missing key", "slots:\n  - capacity: 30\n    start: 1\n    end: 2", "no key"},
		{"duplicate", "slots:\n  - {key: a, capacity: 30, start: 1, end: 2}\n  - {key: a, capacity: 30, start: 3, end: 4}", "duplicate"},
		{"zero capacity", "slots:\n  - {key: a, capacity: 0, start: 1, end: 2}", "capacity"},
		{"inverted hours", "slots:\n  - {key: a, capacity: 30, start: 5, end: 5}", "out of range"},
		{"past midnight", "slots:\n  - {key: a, capacity: 30, start: 22, end: 25}", "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.doc))
			require.ErrorIs(t, err, ErrInvalidCatalog)
			if tt.want != "" {
				assert.Contains(t, err.Error(), tt.want)
			}
		})
	}
}

func TestValidateCatalog_DefaultIsValid(t *testing.T) {
	assert.NoError(t, ValidateCatalog(domain.DefaultCatalog()))
}

func TestLoadCatalog_EmptyURLUsesDefault(t *testing.T) {
	catalog, err := LoadCatalog(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCatalog(), catalog)
}

func TestLoadCatalog_FromMemURL(t *testing.T) {
	fs := afs.New()
	ctx := context.Background()
	url := "mem://localhost/config/slots.yaml"
	require.NoError(t, fs.Upload(ctx, url, 0644, strings.NewReader("slots:\n  - {key: solo, capacity: 90, start: 8, end: 10}\n")))
	t.Cleanup(func() { _ = fs.Delete(ctx, url) })

	catalog, err := LoadCatalog(ctx, fs, url)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, domain.SlotKey("solo"), catalog[0].Key)
}

func TestLoadCatalog_MissingFileIsError(t *testing.T) {
	_, err := LoadCatalog(context.Background(), afs.New(), "mem://localhost/config/absent.yaml")
	assert.Error(t, err)
}
