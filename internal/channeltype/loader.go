package channeltype

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// sourceFile is the on-disk layout of an operator-supplied channel type table:
//
//	channel_types:
//	  - {id: 1, label: OpenAI, color: success}
//	  - {id: 14, label: Anthropic Claude, color: primary}
type sourceFile struct {
	ChannelTypes []Entry `yaml:"channel_types"`
}

// LoadFile reads a YAML channel type table and builds a registry from it.
// The file goes through the same validation as New, so a repeated id is a
// configuration error.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read channel types file: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse builds a registry from YAML bytes. Unknown keys are rejected so a
// misspelled field does not silently produce an empty label.
func Parse(data []byte) (*Registry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var src sourceFile
	if err := dec.Decode(&src); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("channel types file is empty")
		}
		return nil, fmt.Errorf("failed to parse channel types: %w", err)
	}
	if len(src.ChannelTypes) == 0 {
		return nil, fmt.Errorf("channel types file declares no entries")
	}

	return New(src.ChannelTypes)
}
