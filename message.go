// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package swiftlog

import "strings"

// NamedArg is one (name, formatted value) pair extracted from a
// message template's named placeholders, in template order.
type NamedArg struct {
	Name  string
	Value string
}

// renderMessage substitutes a message template's `{}`, `{name}`, and
// `{name:spec}` placeholders with the already-formatted argument
// values, in placeholder order, and collects named placeholders into
// named args (e.g. "{a} to {b}" -> "a: <A>, b: <B>").
//
// Format specs after ':' are accepted but not applied: each value is
// substituted exactly as decodeArgs rendered it, so "{:.2f}" prints a
// float with its full shortest representation, not two decimals.
func renderMessage(template string, values []string) (message string, named []NamedArg) {
	var out strings.Builder
	out.Grow(len(template))

	argIdx := 0
	i := 0
	for i < len(template) {
		c := template[i]
		if c != '{' {
			out.WriteByte(c)
			i++
			continue
		}
		end := strings.IndexByte(template[i+1:], '}')
		if end < 0 {
			out.WriteByte(c)
			i++
			continue
		}
		end += i + 1
		body := template[i+1 : end]
		name := body
		if idx := strings.IndexByte(body, ':'); idx >= 0 {
			name = body[:idx]
		}

		var val string
		if argIdx < len(values) {
			val = values[argIdx]
			argIdx++
		}
		out.WriteString(val)
		if name != "" {
			named = append(named, NamedArg{Name: name, Value: val})
		}
		i = end + 1
	}
	return out.String(), named
}

// formatNamedArgs renders named args as "a: <A>, b: <B>" for the
// pattern formatter's %(named_args) placeholder.
func formatNamedArgs(named []NamedArg) string {
	if len(named) == 0 {
		return ""
	}
	var b strings.Builder
	for i, n := range named {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(n.Name)
		b.WriteString(": ")
		b.WriteString(n.Value)
	}
	return b.String()
}
