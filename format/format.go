package format

import (
	"errors"
	"strconv"

	"github.com/andrepereiradasilva/registry/tree"
)

// Codec translates between a serialized document and a registry tree.
// Implementations must be stateless: one codec instance serves every
// call, concurrently.
type Codec interface {
	Name() string
	Decode(data []byte, opts Options) (*tree.Node, error)
	Encode(root *tree.Node, opts Options) ([]byte, error)
}

// Options carries format-specific knobs into Decode and Encode. Keys
// are defined by each codec; unknown keys are ignored.
type Options map[string]any

// ErrUnknownFormat is returned by lookups for a name or extension no
// codec is registered under.
var ErrUnknownFormat = errors.New("unknown format")

// String returns the option under key as a string, or def when the
// option is absent or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the option under key as a bool. String values parse
// with strconv.ParseBool.
func (o Options) Bool(key string, def bool) bool {
	v, ok := o[key]
	if !ok {
		return def
	}
	switch x := v.(type) {
	case bool:
		return x
	case string:
		if b, err := strconv.ParseBool(x); err == nil {
			return b
		}
	}
	return def
}

// Int returns the option under key as an int, accepting the numeric
// kinds a decoded options document may hold.
func (o Options) Int(key string, def int) int {
	v, ok := o[key]
	if !ok {
		return def
	}
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return int(x)
	case string:
		if i, err := strconv.Atoi(x); err == nil {
			return i
		}
	}
	return def
}
