package registry

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/andrepereiradasilva/registry/debug"
	"github.com/andrepereiradasilva/registry/gobind"
	"github.com/andrepereiradasilva/registry/tree"
)

// ExpandString interpolates ${...} expressions in s.
//
// The inner expression is evaluated with expr-lang against env. Within
// an expression, backslash escaping is supported:
//   - \} → literal } (does not close the expression)
//   - \\ → literal \
//   - \x → x (for any character x)
//
// A ${ without an unescaped closing } is not an expression and stays
// literal text.
func ExpandString(s string, env map[string]any) (string, error) {
	if len(s) < 3 {
		return s, nil
	}
	exprStart := -1 // position of the $ that opened the expression
	i := 0
	n := len(s)
	var outBuf []byte // accumulates the final output
	var keyBuf []byte // accumulates the current expression, unescaped

	for i < n-1 {
		c, next := s[i], s[i+1]
		i++
		switch c {
		case '$':
			if next == '{' {
				exprStart = i - 1
				keyBuf = keyBuf[:0]
				i++
				continue
			}
			if exprStart == -1 {
				outBuf = append(outBuf, c)
			} else {
				keyBuf = append(keyBuf, c)
			}
		case '\\':
			if exprStart != -1 {
				// backslash escapes the next character
				keyBuf = append(keyBuf, next)
				i++
				continue
			}
			outBuf = append(outBuf, c)
		case '}':
			if exprStart != -1 {
				rendered, err := evalExpr(string(keyBuf), env)
				if err != nil {
					return "", err
				}
				outBuf = append(outBuf, rendered...)
				exprStart = -1
				continue
			}
			outBuf = append(outBuf, c)
		default:
			if exprStart == -1 {
				outBuf = append(outBuf, c)
			} else {
				keyBuf = append(keyBuf, c)
			}
		}
	}

	if exprStart == -1 {
		outBuf = append(outBuf, s[n-1])
		return string(outBuf), nil
	}

	// Still inside an expression. It closes only if the final byte is
	// an unescaped }.
	if i >= n || s[n-1] != '}' {
		outBuf = append(outBuf, s[exprStart:n]...)
		return string(outBuf), nil
	}
	rendered, err := evalExpr(string(keyBuf), env)
	if err != nil {
		return "", err
	}
	outBuf = append(outBuf, rendered...)
	return string(outBuf), nil
}

func evalExpr(key string, env map[string]any) ([]byte, error) {
	key = strings.TrimSpace(key)
	program, err := expr.Compile(key)
	if err != nil {
		return nil, fmt.Errorf("error compiling %q: %w", key, err)
	}
	x, err := vm.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", key, err)
	}
	if debug.Expand() {
		debug.Logf("expand %q gave %#v\n", key, x)
	}
	return renderValue(x)
}

// renderValue prints an evaluation result into the output: strings
// raw, scalars via strconv, anything else as json.
func renderValue(v any) ([]byte, error) {
	switch x := v.(type) {
	case string:
		return []byte(x), nil
	case int:
		return strconv.AppendInt(nil, int64(x), 10), nil
	case int64:
		return strconv.AppendInt(nil, x, 10), nil
	case float64:
		return []byte(strconv.FormatFloat(x, 'f', -1, 64)), nil
	case bool:
		return []byte(strconv.FormatBool(x)), nil
	case json.Number:
		return []byte(x), nil
	default:
		node, err := gobind.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("could not render evaluation result: %w", err)
		}
		return node.MarshalJSON()
	}
}

// Expand interpolates ${...} expressions in every string leaf of the
// tree, in place. Expressions see the tree itself as nested maps, so
// member access follows paths (${server.host}, ${server.port + 1}),
// overlaid with extra. The environment is a snapshot taken before the
// walk; leaves expanded earlier do not feed later ones. The first
// failing leaf aborts the walk.
func (r *Registry) Expand(extra map[string]any) error {
	env := r.ToMap()
	if env == nil {
		env = map[string]any{}
	}
	maps.Copy(env, extra)
	return expandNode(r.root, env)
}

func expandNode(n *tree.Node, env map[string]any) error {
	switch n.Type {
	case tree.ObjectType, tree.ArrayType:
		for _, v := range n.Values {
			if err := expandNode(v, env); err != nil {
				return err
			}
		}
	case tree.StringType:
		s, err := ExpandString(n.Str, env)
		if err != nil {
			return err
		}
		n.Str = s
	}
	return nil
}
