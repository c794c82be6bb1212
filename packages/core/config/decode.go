package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Format identifies a configuration file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath maps a file extension to its format.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unrecognized configuration file extension %q", filepath.Ext(path))
}

// Decode turns raw configuration bytes into an ordered document. Empty
// input decodes to an empty document.
func Decode(data []byte, format Format) (*Document, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data)
	case FormatJSON:
		return decodeJSON(data)
	}
	return nil, fmt.Errorf("unknown configuration format %q", format)
}

func decodeYAML(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return NewDocument(), nil
	}
	node := root.Content[0]
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return NewDocument(), nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("configuration root must be a mapping")
	}
	return yamlMapping(node)
}

func yamlMapping(node *yaml.Node) (*Document, error) {
	doc := NewDocument()
	for i := 0; i+1 < len(node.Content); i += 2 {
		value, err := yamlValue(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		doc.Set(node.Content[i].Value, value)
	}
	return doc, nil
}

func yamlValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		return yamlMapping(node)
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, elem := range node.Content {
			value, err := yamlValue(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil
	case yaml.AliasNode:
		return yamlValue(node.Alias)
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			return nil, nil
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return nil, err
			}
			return b, nil
		case "!!int":
			var i int64
			if err := node.Decode(&i); err != nil {
				return nil, err
			}
			return i, nil
		case "!!float":
			var f float64
			if err := node.Decode(&f); err != nil {
				return nil, err
			}
			return f, nil
		default:
			return node.Value, nil
		}
	}
	return nil, fmt.Errorf("unsupported YAML node kind %d", node.Kind)
}

// decodeJSON walks the parsed JSON with gjson, which visits object keys
// in document order.
func decodeJSON(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return NewDocument(), nil
	}
	if !gjson.ValidBytes(trimmed) {
		return nil, fmt.Errorf("invalid JSON")
	}
	parsed := gjson.ParseBytes(trimmed)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("configuration root must be an object")
	}
	return jsonObject(parsed), nil
}

func jsonObject(res gjson.Result) *Document {
	doc := NewDocument()
	res.ForEach(func(key, value gjson.Result) bool {
		doc.Set(key.String(), jsonValue(value))
		return true
	})
	return doc
}

func jsonValue(res gjson.Result) any {
	switch {
	case res.IsObject():
		return jsonObject(res)
	case res.IsArray():
		elems := res.Array()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = jsonValue(e)
		}
		return out
	}
	switch res.Type {
	case gjson.String:
		return res.String()
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		if i, err := strconv.ParseInt(res.Raw, 10, 64); err == nil {
			return i
		}
		return res.Float()
	}
	return nil
}
