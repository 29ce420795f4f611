// Package gobind converts between Go values and tree nodes using
// reflection.
//
// Field visibility:
//   - Only exported struct fields are processed (like encoding/json)
//   - Unexported fields are ignored
//   - Anonymous struct fields are flattened into the parent object
//   - Field matching is case-sensitive
//
// Struct fields are renamed through the "registry" tag, falling back
// to "json" when it is absent, so structs annotated for encoding/json
// bind without extra tags:
//
//	type Server struct {
//		Host string `registry:"db_host"`
//		Port int    `json:"db_port"`
//		Note string `registry:"-"`
//	}
//
// Marshal keeps struct fields in declaration order and sorts map
// keys. Unmarshal fills the destination in node order and leaves
// fields without a matching member untouched. Types implementing
// encoding.TextMarshaler or encoding.TextUnmarshaler travel as
// strings, which covers time.Time among others.
package gobind
