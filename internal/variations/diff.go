package variations

import "github.com/gradeflow/gradeflow-backend/pkg/db/models"

// VariationKey identifies a stored variation by its attribute tuple, matching Draft.Key.
func VariationKey(v models.Variation) string {
	return attributeKey(v.Color, v.Size, v.Material, v.CustomAttributeValue)
}

// DiffDrafts compares regenerated drafts against stored variations by attribute tuple.
// Grade variations are never treated as removed since the generator does not produce them.
func DiffDrafts(existing []models.Variation, drafts []Draft) (added []Draft, kept []models.Variation, removed []models.Variation) {
	wanted := make(map[string]struct{}, len(drafts))
	for _, d := range drafts {
		wanted[d.Key()] = struct{}{}
	}

	stored := make(map[string]struct{}, len(existing))
	for _, v := range existing {
		if v.IsGrade {
			continue
		}
		key := VariationKey(v)
		stored[key] = struct{}{}
		if _, ok := wanted[key]; ok {
			kept = append(kept, v)
		} else {
			removed = append(removed, v)
		}
	}

	for _, d := range drafts {
		if _, ok := stored[d.Key()]; !ok {
			added = append(added, d)
		}
	}
	return added, kept, removed
}
