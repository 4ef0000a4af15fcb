package assessment

// compositeKey builds the namespaced storage key. It never yields a bare key,
// even for a blank region.
func compositeKey(region, base string) string {
	return region + Separator + base
}

// Read returns the value stored for (region, base). The namespaced key wins
// whenever it is present, even holding ""; otherwise the legacy bare key is
// consulted. ok is false when neither exists.
func Read(m map[string]string, region, base string) (string, bool) {
	if v, ok := m[compositeKey(region, base)]; ok {
		return v, true
	}
	return legacyValue(m, base)
}

// Write stores value under the namespaced key for (region, base) and reports
// whether the stored value changed. The bare key is never written, so legacy
// data is left as-is. m must be non-nil.
func Write(m map[string]string, region, base, value string) bool {
	k := compositeKey(region, base)
	if cur, ok := m[k]; ok && cur == value {
		return false
	}
	m[k] = value
	return true
}

// legacyValue is the read path for documents saved before keys were
// namespaced by region. It is the only place a bare key is consulted.
func legacyValue(m map[string]string, base string) (string, bool) {
	v, ok := m[base]
	return v, ok
}
