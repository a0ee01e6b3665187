package dropfs

import (
	"bytes"
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MapItem is one key/value pair of a Mapping.
type MapItem struct {
	Key   string
	Value interface{}
}

// Mapping is a YAML mapping that preserves key order across decode and
// encode. yaml.v3 decodes plain mappings into unordered Go maps, so the
// order-preserving path goes through the node API instead. Nested mappings
// decode as Mapping, sequences as []interface{}, scalars as the usual Go
// types.
type Mapping []MapItem

// Get returns the value stored under key and whether the key is present.
func (m Mapping) Get(key string) (interface{}, bool) {
	for _, it := range m {
		if it.Key == key {
			return it.Value, true
		}
	}
	return nil, false
}

// Set replaces the value under key in place, or appends the pair when the
// key is new.
func (m *Mapping) Set(key string, value interface{}) {
	for i, it := range *m {
		if it.Key == key {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, MapItem{Key: key, Value: value})
}

// Keys returns the keys in mapping order.
func (m Mapping) Keys() []string {
	keys := make([]string, len(m))
	for i, it := range m {
		keys[i] = it.Key
	}
	return keys
}

// MarshalYAML renders the mapping as a block-style YAML mapping node,
// keeping item order.
func (m Mapping) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, it := range m {
		key := &yaml.Node{}
		key.SetString(it.Key)

		value := &yaml.Node{}
		if err := value.Encode(it.Value); err != nil {
			return nil, fmt.Errorf("encode value of %q: %w", it.Key, err)
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

// UnmarshalYAML rebuilds the mapping from a mapping node, keeping document
// order.
func (m *Mapping) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("expected a mapping node, got kind %d", value.Kind)
	}

	out := make(Mapping, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("decode mapping key: %w", err)
		}
		val, err := decodeNode(value.Content[i+1])
		if err != nil {
			return fmt.Errorf("decode value of %q: %w", key, err)
		}
		out = append(out, MapItem{Key: key, Value: val})
	}
	*m = out
	return nil
}

func decodeNode(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case yaml.MappingNode:
		var m Mapping
		if err := n.Decode(&m); err != nil {
			return nil, err
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]interface{}, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := decodeNode(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// yamlIndent matches the fixed indentation every document written by this
// client uses.
const yamlIndent = 4

// ReadYAML downloads and decodes a YAML document as an order-preserving
// mapping.
func (c *Client) ReadYAML(ctx context.Context, p string) (Mapping, error) {
	data, np, err := c.download(ctx, p)
	if err != nil {
		return nil, err
	}

	var m Mapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, decodeErr(np, "yaml", err)
	}
	return m, nil
}

// ReadYAMLInto downloads a YAML document and decodes it into v, which
// follows the usual yaml.Unmarshal rules.
func (c *Client) ReadYAMLInto(ctx context.Context, p string, v interface{}) error {
	data, np, err := c.download(ctx, p)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return decodeErr(np, "yaml", err)
	}
	return nil
}

// WriteYAML encodes the mapping in block style with fixed indentation and
// uploads it, overwriting existing content. Key order is preserved.
func (c *Client) WriteYAML(ctx context.Context, m Mapping, p string) error {
	return c.WriteYAMLValue(ctx, m, p)
}

// WriteYAMLValue encodes any yaml-marshalable value and uploads it.
func (c *Client) WriteYAMLValue(ctx context.Context, v interface{}, p string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml for %s: %w", p, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml for %s: %w", p, err)
	}
	return c.upload(ctx, buf.Bytes(), p)
}
