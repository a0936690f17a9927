package jsonflat

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/glyphscope/core"
)

// Entry is a flattened key/value pair.
type Entry struct {
	Key   string
	Value string
}

// Document is a flattened JSON file.
type Document struct {
	Name    string // file name, without directory
	Entries []Entry
}

// Load reads and flattens a JSON file. Files without a .json extension are
// rejected.
func Load(path string) (*Document, error) {
	name := filepath.Base(path)
	if !strings.HasSuffix(strings.ToLower(name), ".json") {
		return nil, core.Error(core.EINVALID, "Please select a JSON file")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "Cannot open %s", name)
	}
	defer f.Close()
	entries, err := Flatten(f)
	if err != nil {
		return nil, err
	}
	tracer().Infof("flattened %s to %d entries", name, len(entries))
	return &Document{Name: name, Entries: entries}, nil
}

// Flatten decodes a JSON document and flattens it. The top-level value
// should be an object; for an array the element indices are used as keys,
// and a scalar yields no entries.
func Flatten(r io.Reader) ([]Entry, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, parseError(err)
	}
	entries := []Entry{}
	if err := flattenValue(raw, "", &entries); err != nil {
		return nil, parseError(err)
	}
	return entries, nil
}

func parseError(err error) error {
	return core.WrapError(err, core.EINVALID, "Failed to parse JSON file. Please check the file format.")
}

func flattenValue(raw json.RawMessage, prefix string, entries *[]Entry) error {
	switch kind(raw) {
	case '{':
		return flattenObject(raw, prefix, entries)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		for i, item := range items {
			if err := flattenMember(item, join(prefix, strconv.Itoa(i)), entries); err != nil {
				return err
			}
		}
	}
	return nil
}

// flattenObject walks the members of an object in document order.
func flattenObject(raw json.RawMessage, prefix string, entries *[]Entry) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil { // '{'
		return err
	}
	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := t.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		if err := flattenMember(value, join(prefix, key), entries); err != nil {
			return err
		}
	}
	return nil
}

func flattenMember(value json.RawMessage, key string, entries *[]Entry) error {
	if kind(value) == '{' {
		return flattenObject(value, key, entries)
	}
	s, err := stringify(value)
	if err != nil {
		return err
	}
	*entries = append(*entries, Entry{Key: key, Value: s})
	return nil
}

// stringify converts a non-object value to a string.
func stringify(raw json.RawMessage) (string, error) {
	switch kind(raw) {
	case '"':
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return "", err
		}
		elems := make([]string, len(items))
		for i, item := range items {
			switch kind(item) {
			case 'n':
				continue // null elements are empty
			case '{':
				var buf bytes.Buffer
				if err := json.Compact(&buf, item); err != nil {
					return "", err
				}
				elems[i] = buf.String()
			default:
				s, err := stringify(item)
				if err != nil {
					return "", err
				}
				elems[i] = s
			}
		}
		return strings.Join(elems, ","), nil
	}
	return string(bytes.TrimSpace(raw)), nil // number, true, false, null
}

func kind(raw json.RawMessage) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Filter returns the entries whose key or value contains term, ignoring
// case. An empty term keeps every entry.
func Filter(entries []Entry, term string) []Entry {
	if term == "" {
		return entries
	}
	lterm := strings.ToLower(term)
	result := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Key), lterm) || strings.Contains(strings.ToLower(e.Value), lterm) {
			result = append(result, e)
		}
	}
	return result
}
