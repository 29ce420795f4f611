// Package registry implements a hierarchical key/value container
// addressed by separated paths.
//
// A Registry owns an ordered tree of values. Paths name nodes in that
// tree, one segment per level, joined by a separator ("." unless
// configured otherwise):
//
//	r := registry.New()
//	r.Set("db.host", "localhost")
//	r.Set("db.port", 5432)
//	host := r.Get("db.host", "127.0.0.1")
//
// Writes vivify missing intermediate objects, so a single Set can build
// an arbitrarily deep branch. Reads never fail: a path that does not
// resolve, or resolves to null or the empty string, yields the caller's
// default.
//
// Registries populate incrementally from several sources and the later
// sources layer over the earlier ones:
//
//	r := registry.New()
//	err := r.LoadFile("defaults.json")
//	err = r.LoadFile("site.yaml")
//	err = r.LoadMap(map[string]any{"db.port": 5433}, registry.Flattened())
//
// Serialization goes through named codecs (json, yaml, xml, toml, ini,
// hcl); see package format. Struct binding goes through reflection; see
// package gobind:
//
//	s, err := r.ToString(registry.WithFormat("yaml"))
//	var cfg Config
//	err = r.ToStruct(&cfg)
//
// A Registry is a single-writer structure: concurrent readers are fine
// only while no goroutine mutates it.
package registry
