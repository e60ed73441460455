package loader

// DeepCopyValue returns a deep copy of a generic document-tree value.
// Primitives copy by value; maps and slices are copied recursively.
func DeepCopyValue(v any) any {
	if v == nil {
		return nil
	}
	switch t := v.(type) {
	case string, bool, float64, int, int64, float32, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		return t
	case []any:
		cp := make([]any, len(t))
		for i, item := range t {
			cp[i] = DeepCopyValue(item)
		}
		return cp
	case map[string]any:
		cp := make(map[string]any, len(t))
		for k, item := range t {
			cp[k] = DeepCopyValue(item)
		}
		return cp
	default:
		// Unknown type - could be custom types in extensions.
		// Return as-is (shallow copy).
		return v
	}
}
