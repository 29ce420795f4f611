// Package format provides the serialization codecs for registry trees.
//
// # Usage
//
//	// Look up a codec by name or file extension
//	codec, err := format.Default().Lookup("yaml")
//	codec, err = format.Default().ByExtension(".toml")
//
//	// Decode and encode
//	root, err := codec.Decode(data, nil)
//	out, err := codec.Encode(root, format.Options{"indent": "  "})
//
// The built-in codecs are json, yaml, xml, toml, ini, and hcl. Custom
// codecs register on a Registry of their own:
//
//	reg := format.NewRegistry()
//	reg.Register("custom", NewCustom, "cst")
//
// Codecs construct lazily on first lookup and a single instance is
// shared afterwards, so implementations must be stateless.
package format
