package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Set changes one dotted key, e.g. "startup.splash_timeout", in the YAML
// file at path. Comments and key order of the file survive the edit. The
// edited document is validated as a ShellConfig before it is written.
func Set(path, key, value string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}

	parts := strings.Split(key, ".")
	for _, p := range parts {
		if p == "" {
			return fmt.Errorf("invalid key %q", key)
		}
	}

	val, err := scalarNode(value)
	if err != nil {
		return err
	}
	if err := setNode(doc.Content[0], parts, val); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	cfg := DefaultShellConfig()
	if err := yaml.Unmarshal(buf.Bytes(), &cfg); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setNode walks the mapping along parts, creating missing mappings, and
// replaces the leaf. Comments on a replaced value are kept.
func setNode(node *yaml.Node, parts []string, val *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%s is not a mapping", parts[0])
	}

	for i := 0; i < len(node.Content); i += 2 {
		if node.Content[i].Value != parts[0] {
			continue
		}
		old := node.Content[i+1]
		if len(parts) > 1 {
			return setNode(old, parts[1:], val)
		}
		if old.Kind == yaml.ScalarNode {
			val.Style = old.Style
		}
		val.HeadComment = old.HeadComment
		val.LineComment = old.LineComment
		val.FootComment = old.FootComment
		node.Content[i+1] = val
		return nil
	}

	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: parts[0]}
	if len(parts) == 1 {
		node.Content = append(node.Content, keyNode, val)
		return nil
	}
	child := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	node.Content = append(node.Content, keyNode, child)
	return setNode(child, parts[1:], val)
}

// scalarNode parses a command-line value as YAML so that "true", "3s" and
// "[a, b]" keep their natural types.
func scalarNode(value string) (*yaml.Node, error) {
	var n yaml.Node
	if err := yaml.Unmarshal([]byte(value), &n); err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", value, err)
	}
	if len(n.Content) == 0 {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}, nil
	}
	return n.Content[0], nil
}
