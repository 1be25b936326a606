// Package deepmerge reconciles two nested string-keyed mapping trees.
// The newer side wins on conflicting scalar leaves; keys present on only
// one side are kept from that side; nested mappings are merged recursively.
package deepmerge

// Merge combines newer and older into a fresh map. Neither input is
// modified. Values that are map[string]any on both sides are merged
// recursively; any other conflicting pair resolves to the newer value.
func Merge(newer, older map[string]any) map[string]any {
	out := make(map[string]any, len(newer)+len(older))
	for key, oldVal := range older {
		newVal, inNewer := newer[key]
		if !inNewer {
			out[key] = oldVal
			continue
		}
		newMap, newIsMap := newVal.(map[string]any)
		oldMap, oldIsMap := oldVal.(map[string]any)
		if newIsMap && oldIsMap {
			out[key] = Merge(newMap, oldMap)
			continue
		}
		out[key] = newVal
	}
	for key, newVal := range newer {
		if _, seen := older[key]; !seen {
			out[key] = newVal
		}
	}
	return out
}
