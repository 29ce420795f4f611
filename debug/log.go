package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/andrepereiradasilva/registry/tree"
)

// Logf writes to stderr, rendering node and map arguments as JSON so
// traces stay readable.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(x, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", x)
				continue
			}
			args[i] = string(d)
		case *tree.Node:
			d, err := x.MarshalJSON()
			if err != nil {
				args[i] = fmt.Sprintf("[raw node] %v", x)
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
