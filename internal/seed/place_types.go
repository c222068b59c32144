package seed

import (
	_ "embed"
	"fmt"

	"dananglover/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed place_types.yml
var placeTypesYAML []byte

type placeTypeDef struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// BuiltInPlaceTypes returns the catalog of permanent place categories.
func BuiltInPlaceTypes() ([]placeTypeDef, error) {
	var defs []placeTypeDef
	if err := yaml.Unmarshal(placeTypesYAML, &defs); err != nil {
		return nil, fmt.Errorf("parse place types: %w", err)
	}
	return defs, nil
}

// PlaceTypes seeds the permanent place categories. Existing rows are left
// untouched so the call is safe on every startup.
func PlaceTypes(db *gorm.DB) error {
	defs, err := BuiltInPlaceTypes()
	if err != nil {
		return err
	}

	for _, def := range defs {
		placeType := models.PlaceType{Name: def.Name, Description: def.Description}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&placeType).Error; err != nil {
			return fmt.Errorf("seed place type %q: %w", def.Name, err)
		}
	}
	return nil
}
