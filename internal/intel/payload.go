package intel

// Payload is a provider response projected into the common field set the
// scorer understands. Values are restricted to what survives a JSON
// round-trip: bool, float64, string, and nested slices/maps thereof.
type Payload map[string]any

// Bool reads a boolean field; absent or mistyped fields read as false.
func (p Payload) Bool(key string) bool {
	if p == nil {
		return false
	}
	v, ok := p[key].(bool)
	return ok && v
}

// Float reads a numeric field. JSON decoding produces float64 but payloads
// built in code may hold ints; both are accepted.
func (p Payload) Float(key string) float64 {
	if p == nil {
		return 0
	}
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// Int reads a numeric field truncated to int.
func (p Payload) Int(key string) int {
	return int(p.Float(key))
}

// String reads a string field; absent or mistyped fields read as "".
func (p Payload) String(key string) string {
	if p == nil {
		return ""
	}
	v, _ := p[key].(string)
	return v
}

// Has reports whether the field is present at all.
func (p Payload) Has(key string) bool {
	if p == nil {
		return false
	}
	_, ok := p[key]
	return ok
}

// Clone returns a shallow copy so cached payloads cannot be mutated by
// callers sharing a cache entry.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
