package dtos

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// CatalogSeed is the YAML document used to pre-populate a sandbox catalog.
//
//	products:
//	  - name: Tortuga de orejas rojas
//	    description: Tortuga acuática juvenil
//	    price: "45990"
type CatalogSeed struct {
	Products []SeedProduct `yaml:"products"`
}

// SeedProduct is one catalog entry of a seed file. Price is kept as text so
// YAML floats never round it.
type SeedProduct struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
}

// LoadCatalogSeed reads and parses a seed file from path.
func LoadCatalogSeed(path string) (*CatalogSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return ParseCatalogSeed(data)
}

// ParseCatalogSeed parses YAML seed data and validates every entry.
func ParseCatalogSeed(data []byte) (*CatalogSeed, error) {
	var seed CatalogSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
	}

	for i, p := range seed.Products {
		if p.Name == "" {
			return nil, fmt.Errorf("seed product %d: name is required", i)
		}
		if _, err := p.DecimalPrice(); err != nil {
			return nil, fmt.Errorf("seed product %d (%s): %w", i, p.Name, err)
		}
	}

	return &seed, nil
}

// DecimalPrice parses Price; an empty price is zero.
func (p SeedProduct) DecimalPrice() (decimal.Decimal, error) {
	if p.Price == "" {
		return decimal.Zero, nil
	}
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q", p.Price)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price %q", p.Price)
	}
	return price, nil
}
