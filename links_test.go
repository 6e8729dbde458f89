package lazydi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLinks(t *testing.T) {
	doc := `
links:
  - abstract: ` + fooInterfaceName + `
    concrete: "` + fooName + `"
  - abstract: ` + barInterfaceName + `
    concrete: "` + barName + `"
  - abstract: ` + fooInterfaceName + `
    concrete: "` + anotherFooName + `"
`
	table, err := LoadLinks(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, table.Links, 3)
	assert.Equal(t, LinkSpec{Abstract: fooInterfaceName, Concrete: fooName}, table.Links[0])
	assert.Equal(t, LinkSpec{Abstract: fooInterfaceName, Concrete: anotherFooName}, table.Links[2])

	registry := New()
	resolver, err := Autowire(registry, newTestTypes(t)).WithLinks(table)
	require.NoError(t, err)

	fooBar, err := Resolve[*FooBar](resolver)
	require.NoError(t, err)
	assert.IsType(t, &AnotherFoo{}, fooBar.Foo())
	assert.IsType(t, &Bar{}, fooBar.Bar())
}

func TestLoadLinks_Empty(t *testing.T) {
	table, err := LoadLinks(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, table.Links)

	resolver := Autowire(New(), newTestTypes(t))
	same, err := resolver.WithLinks(table)
	require.NoError(t, err)
	assert.Same(t, resolver, same)
}

func TestLoadLinks_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", "links: [unclosed"},
		{"unknown field", "links:\n  - abstract: a\n    concrete: b\n    cache: true\n"},
		{"missing concrete", "links:\n  - abstract: a\n"},
		{"missing abstract", "links:\n  - concrete: b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLinks(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestWithLinks_StopsAtInvalidLink(t *testing.T) {
	resolver := Autowire(New(), newTestTypes(t))
	linked, err := resolver.WithLinks(LinkTable{Links: []LinkSpec{
		{Abstract: fooInterfaceName, Concrete: fooName},
		{Abstract: fooInterfaceName, Concrete: barName},
	}})

	assert.ErrorIs(t, err, ErrInvalidServiceType)
	assert.Nil(t, linked)
	assert.False(t, resolver.Has(fooInterfaceName))
}
