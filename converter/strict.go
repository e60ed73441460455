package converter

// SetAdditionalProperties recursively sets additionalProperties: false on
// every object schema node that declares properties but does not already
// specify additionalProperties. A node that declares additionalProperties
// (including true) is left untouched at that node; its descendants are still
// processed independently. The node is mutated in place.
func SetAdditionalProperties(node any) {
	switch v := node.(type) {
	case map[string]any:
		if _, ok := v["properties"]; ok {
			if _, ok := v["additionalProperties"]; !ok {
				v["additionalProperties"] = false
			}
		}
		for _, val := range v {
			SetAdditionalProperties(val)
		}
	case []any:
		for _, item := range v {
			SetAdditionalProperties(item)
		}
	}
}
