package costing

import (
	"strings"

	"nailpos/internal/model"
)

// NormalizeName lower-cases s, turns underscores into spaces and trims it, so
// "Top_Coat " and "top coat" compare equal.
func NormalizeName(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.ToLower(s), "_", " "))
}

// NamesMatch reports whether two names are equal after normalization or one
// contains the other. Empty names never match.
func NamesMatch(a, b string) bool {
	na, nb := NormalizeName(a), NormalizeName(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}

// MatchChemical resolves a legacy chemical reference. An exact id match wins;
// otherwise the first product (in slice order) whose name matches ref.
func MatchChemical(ref string, chemicals []model.ChemicalProduct) (string, bool) {
	for i := range chemicals {
		if chemicals[i].ID.String() == ref {
			return ref, true
		}
	}
	for i := range chemicals {
		if NamesMatch(chemicals[i].Name, ref) {
			return chemicals[i].ID.String(), true
		}
	}
	return "", false
}

// FindMaterialRecipe returns the first legacy recipe keyed by the service id
// or, case-insensitively, by the service name.
func FindMaterialRecipe(svc model.CatalogService, recipes []model.MaterialRecipe) (*model.MaterialRecipe, bool) {
	id := svc.ID.String()
	name := strings.TrimSpace(svc.Name)
	for i := range recipes {
		r := &recipes[i]
		if r.ServiceID != "" && r.ServiceID == id {
			return r, true
		}
		if name != "" && strings.EqualFold(strings.TrimSpace(r.ServiceName), name) {
			return r, true
		}
	}
	return nil, false
}

// FindServiceRecipe returns the legacy consumable recipe whose id is the
// service id or the service name.
func FindServiceRecipe(svc model.CatalogService, recipes []model.ServiceRecipe) (*model.ServiceRecipe, bool) {
	id := svc.ID.String()
	for i := range recipes {
		if recipes[i].ID == id || (svc.Name != "" && recipes[i].ID == svc.Name) {
			return &recipes[i], true
		}
	}
	return nil, false
}

// LegacyMaterials converts a legacy material recipe into material lines.
// Unmatched references are dropped; matched ones get a quantity of 1.
func LegacyMaterials(svc model.CatalogService, recipes []model.MaterialRecipe, chemicals []model.ChemicalProduct) ([]model.MaterialLine, bool) {
	r, ok := FindMaterialRecipe(svc, recipes)
	if !ok {
		return []model.MaterialLine{}, false
	}
	lines := make([]model.MaterialLine, 0, len(r.ChemicalRefs))
	for _, ref := range r.ChemicalRefs {
		if id, ok := MatchChemical(ref, chemicals); ok {
			lines = append(lines, model.MaterialLine{MaterialID: id, Qty: one})
		}
	}
	return lines, true
}

// LegacyConsumables returns the items of the matching legacy service recipe.
func LegacyConsumables(svc model.CatalogService, recipes []model.ServiceRecipe) ([]model.ConsumableLine, bool) {
	r, ok := FindServiceRecipe(svc, recipes)
	if !ok {
		return []model.ConsumableLine{}, false
	}
	return append([]model.ConsumableLine{}, r.Items...), true
}
