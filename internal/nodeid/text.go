// internal/nodeid/text.go
package nodeid

// MarshalText encodes the ID in its canonical form, so IDs appear as
// `"n3"` in JSON documents and as map keys.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}
