package builder

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// serializeOperation renders the operation text: header with kind, optional
// name and variable declarations, then the selection tree as nested blocks.
// Indentation is cosmetic.
func serializeOperation(kind, name string, selections []*Selection, variables []*Variable) string {
	var b strings.Builder
	b.WriteString(kind)
	if name != "" {
		b.WriteString(" ")
		b.WriteString(name)
	}
	if len(variables) > 0 {
		b.WriteString("(")
		for i, v := range variables {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("$")
			b.WriteString(v.Name)
			b.WriteString(": ")
			b.WriteString(declaredType(v))
		}
		b.WriteString(")")
	}
	b.WriteString(" {\n")
	for _, sel := range selections {
		writeSelection(&b, sel, 1)
	}
	b.WriteString("}")
	return b.String()
}

// declaredType appends the required marker unless the wire type already
// denotes non-null.
func declaredType(v *Variable) string {
	if v.Required && !strings.HasSuffix(v.Type, "!") {
		return v.Type + "!"
	}
	return v.Type
}

func writeSelection(b *strings.Builder, sel *Selection, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	if sel.Alias != "" && sel.Alias != sel.Name {
		b.WriteString(sel.Alias)
		b.WriteString(": ")
	}
	b.WriteString(sel.Name)
	if len(sel.Args) > 0 {
		b.WriteString("(")
		keys := make([]string, 0, len(sel.Args))
		for k := range sel.Args {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(formatValue(sel.Args[k]))
		}
		b.WriteString(")")
	}
	if len(sel.Children) == 0 {
		b.WriteString("\n")
		return
	}
	b.WriteString(" {\n")
	for _, child := range sel.Children {
		writeSelection(b, child, depth+1)
	}
	b.WriteString(indent)
	b.WriteString("}\n")
}

// formatValue renders an argument literal. Strings are quoted with full
// escaping; variable references are never quoted.
func formatValue(value any) string {
	if value == nil {
		return "null"
	}
	switch v := value.(type) {
	case VarRef:
		return "$" + v.Name
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + formatValue(v[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case Args:
		return formatValue(map[string]any(v))
	default:
		return fmt.Sprint(v)
	}
}
