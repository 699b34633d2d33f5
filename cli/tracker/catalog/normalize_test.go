package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBuses(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected []Entry
	}{
		{
			name: "Object values with name field",
			doc:  `{"bus_002":{"name":"Bus Two"},"bus_001":{"name":"Bus One"}}`,
			expected: []Entry{
				{ID: "bus_001", Name: "Bus One"},
				{ID: "bus_002", Name: "Bus Two"},
			},
		},
		{
			name: "Plain string values",
			doc:  `{"bus_007":"Седьмой"}`,
			expected: []Entry{
				{ID: "bus_007", Name: "Седьмой"},
			},
		},
		{
			name: "Unknown shape falls back to key",
			doc:  `{"bus_009":{"capacity":42}}`,
			expected: []Entry{
				{ID: "bus_009", Name: "bus_009"},
			},
		},
		{
			name:     "Unparseable document falls back to defaults",
			doc:      `[1,2,3]`,
			expected: defaultBuses(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeBuses(tt.doc))
		})
	}
}

func TestNormalizeRoutes(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected []Entry
	}{
		{
			name: "Name field wins",
			doc:  `{"r1":{"name":"Центральный"}}`,
			expected: []Entry{
				{ID: "r1", Name: "Центральный"},
			},
		},
		{
			name: "RouteName field as fallback",
			doc:  `{"r1":{"routeName":"Airport Express"}}`,
			expected: []Entry{
				{ID: "r1", Name: "Airport Express"},
			},
		},
		{
			name: "Stops produce descriptive name",
			doc:  `{"r2":{"stop_1":{"name":"Depot"},"stop_2":{"name":"Middle"},"stop_3":{"name":"Terminal"}}}`,
			expected: []Entry{
				{ID: "r2", Name: "Route R2: Depot → Terminal"},
			},
		},
		{
			name: "Stops without names use placeholders",
			doc:  `{"r3":{"stop_1":{},"stop_3":{}}}`,
			expected: []Entry{
				{ID: "r3", Name: "Route R3: Start → End"},
			},
		},
		{
			name: "Unknown shape falls back to key",
			doc:  `{"r4":{"color":"green"}}`,
			expected: []Entry{
				{ID: "r4", Name: "r4"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeRoutes(tt.doc))
		})
	}
}

// staticSource отдаёт заранее заданные документы.
type staticSource struct {
	docs map[string]string
}

func (s *staticSource) ReadOnce(path string) (string, bool, error) {
	doc, ok := s.docs[path]
	return doc, ok, nil
}

func (s *staticSource) SubscribeValue(path string, onChange func(string)) (func(), error) {
	return func() {}, nil
}

func TestCatalogRefreshUsesDefaultsWhenAbsent(t *testing.T) {
	c := &Catalog{Source: &staticSource{docs: map[string]string{}}}
	c.Refresh()

	assert.Equal(t, defaultBuses(), c.Buses())
	assert.Equal(t, defaultRoutes(), c.Routes())
}

func TestCatalogRefreshReadsDocuments(t *testing.T) {
	c := &Catalog{Source: &staticSource{docs: map[string]string{
		"busIds": `{"bus_001":{"name":"Bus One"}}`,
		"routes": `{"r1":{"routeName":"Ring"}}`,
	}}}
	c.Refresh()

	assert.Equal(t, []Entry{{ID: "bus_001", Name: "Bus One"}}, c.Buses())
	assert.Equal(t, []Entry{{ID: "r1", Name: "Ring"}}, c.Routes())
}
