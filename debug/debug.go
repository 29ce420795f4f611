package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Bind   bool
	Merge  bool
	Expand bool
	Patch  bool
	Format bool
}

var d *debug

func init() {
	d = &debug{}
	d.Bind = boolEnv("REGISTRY_DEBUG_BIND")
	d.Merge = boolEnv("REGISTRY_DEBUG_MERGE")
	d.Expand = boolEnv("REGISTRY_DEBUG_EXPAND")
	d.Patch = boolEnv("REGISTRY_DEBUG_PATCH")
	d.Format = boolEnv("REGISTRY_DEBUG_FORMAT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Bind() bool {
	return d.Bind
}
func Merge() bool {
	return d.Merge
}
func Expand() bool {
	return d.Expand
}
func Patch() bool {
	return d.Patch
}
func Format() bool {
	return d.Format
}
