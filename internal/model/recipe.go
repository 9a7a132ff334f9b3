package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// MaterialLine links a ChemicalProduct to a recipe with the amount used per service.
type MaterialLine struct {
	MaterialID string          `json:"materialId"`
	Qty        decimal.Decimal `json:"qty"`
}

// UnmarshalJSON also accepts the bare id strings stored by older records;
// those carry no quantity and count as one unit.
func (l *MaterialLine) UnmarshalJSON(data []byte) error {
	id, ok, err := bareID(data)
	if err != nil {
		return err
	}
	if ok {
		*l = MaterialLine{MaterialID: id, Qty: decimal.NewFromInt(1)}
		return nil
	}
	type plain MaterialLine
	return json.Unmarshal(data, (*plain)(l))
}

// ConsumableLine links a Consumable to a recipe with the units used per service.
type ConsumableLine struct {
	ConsumableID string          `json:"consumableId"`
	Qty          decimal.Decimal `json:"qty"`
}

func (l *ConsumableLine) UnmarshalJSON(data []byte) error {
	id, ok, err := bareID(data)
	if err != nil {
		return err
	}
	if ok {
		*l = ConsumableLine{ConsumableID: id, Qty: decimal.NewFromInt(1)}
		return nil
	}
	type plain ConsumableLine
	return json.Unmarshal(data, (*plain)(l))
}

func bareID(data []byte) (string, bool, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false, err
	}
	return s, true, nil
}

// RecipeList is an optional recipe column. Present=false means the field was
// never written (NULL), which is distinct from an explicitly empty list: an
// absent list defers to legacy recipes, an empty one does not.
type RecipeList[T any] struct {
	Items   []T
	Present bool
}

// SetRecipe returns a present list holding items (which may be empty).
func SetRecipe[T any](items ...T) RecipeList[T] {
	if items == nil {
		items = []T{}
	}
	return RecipeList[T]{Items: items, Present: true}
}

func (r *RecipeList[T]) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*r = RecipeList[T]{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("recipe list: unsupported scan type %T", value)
	}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		*r = RecipeList[T]{}
		return nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return err
	}
	*r = SetRecipe(items...)
	return nil
}

func (r RecipeList[T]) Value() (driver.Value, error) {
	if !r.Present {
		return nil, nil
	}
	items := r.Items
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (RecipeList[T]) GormDataType() string { return "json" }

func (RecipeList[T]) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	case "sqlite":
		return "JSON"
	}
	return ""
}

// MarshalJSON renders an absent list as null.
func (r RecipeList[T]) MarshalJSON() ([]byte, error) {
	if !r.Present {
		return []byte("null"), nil
	}
	if r.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Items)
}

func (r *RecipeList[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = RecipeList[T]{}
		return nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.New("recipe list must be an array")
	}
	*r = SetRecipe(items...)
	return nil
}

type (
	MaterialList   = RecipeList[MaterialLine]
	ConsumableList = RecipeList[ConsumableLine]
)
