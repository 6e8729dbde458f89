package lazydi

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LinkSpec is one interface-to-implementation link, by type name.
type LinkSpec struct {
	Abstract string `yaml:"abstract"`
	Concrete string `yaml:"concrete"`
}

// LinkTable is an ordered list of links. When the same interface appears more
// than once the last entry wins.
type LinkTable struct {
	Links []LinkSpec `yaml:"links"`
}

// LoadLinks decodes a link table from YAML:
//
//	links:
//	  - abstract: github.com/acme/app.Store
//	    concrete: "*github.com/acme/app.SQLStore"
func LoadLinks(r io.Reader) (LinkTable, error) {
	var table LinkTable
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&table); err != nil {
		if errors.Is(err, io.EOF) {
			return LinkTable{}, nil
		}
		return LinkTable{}, errors.Wrap(err, "decoding link table")
	}
	for i, link := range table.Links {
		if link.Abstract == "" || link.Concrete == "" {
			return LinkTable{}, errors.Errorf("link %d: abstract and concrete are both required", i)
		}
	}
	return table, nil
}

// WithLinks returns a resolver with every link of the table applied in order.
// It stops at the first invalid link.
func (r *Resolver) WithLinks(table LinkTable) (*Resolver, error) {
	result := r
	for _, link := range table.Links {
		next, err := result.Link(link.Abstract, link.Concrete)
		if err != nil {
			return nil, err
		}
		result = next
	}
	return result, nil
}
