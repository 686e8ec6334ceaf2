package jsonutil

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/fatih/structs"
	"github.com/hokaccha/go-prettyjson"
)

var formatter *prettyjson.Formatter

func init() {
	formatter = prettyjson.NewFormatter()
	formatter.Indent = 0
	formatter.Newline = ""
}

// DisableColor turns off color information in the output.
func DisableColor() {
	formatter.DisabledColor = true
}

// MarshalCompactPretty formats the value in a compact JSON form and add color information.
// Structs are written one field per line, sorted by their JSON names.
// Other values are written on a single line.
func MarshalCompactPretty(v any) ([]byte, error) {
	if !structs.IsStruct(v) {
		b, err := formatter.Marshal(v)
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	}
	m := make(map[string]any)
	var names []string
	for _, f := range structs.New(v).Fields() {
		if !f.IsExported() {
			continue
		}
		name := jsonName(f)
		if name == "-" {
			continue
		}
		m[name] = f.Value()
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return strings.Compare(names[i], names[j]) == -1 })
	var buf bytes.Buffer
	for _, name := range names {
		b, err := formatter.Marshal(m[name])
		if err != nil {
			return nil, err
		}
		buf.WriteString(name)
		buf.WriteString(": ")
		buf.Write(b)
		buf.WriteRune('\n')
	}
	return buf.Bytes(), nil
}

// MarshalRaw formats a raw JSON object like MarshalCompactPretty formats structs.
func MarshalRaw(raw json.RawMessage) ([]byte, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return formatter.Format(raw)
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	var buf bytes.Buffer
	for _, name := range names {
		b, err := formatter.Format(m[name])
		if err != nil {
			return nil, err
		}
		buf.WriteString(name)
		buf.WriteString(": ")
		buf.Write(b)
		buf.WriteRune('\n')
	}
	return buf.Bytes(), nil
}

func jsonName(f *structs.Field) string {
	tag := f.Tag("json")
	if tag == "" {
		return f.Name()
	}
	name := strings.Split(tag, ",")[0]
	if name == "" {
		return f.Name()
	}
	return name
}
