package gemini

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Behavior is the static generation profile loaded from a side JSON file: the
// system instruction, the tool list and the generation parameters. It is read
// once per process; a missing or unparseable file leaves the client in a
// not-configured state instead of failing the process.
type Behavior struct {
	SystemInstruction string          `json:"system_instruction"`
	Tools             []Tool          `json:"tools"`
	GenerationConfig  json.RawMessage `json:"generation_config"`
}

func LoadBehavior(path string) (*Behavior, error) {
	if path == "" {
		return nil, fmt.Errorf("behavior config path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading behavior config: %w", err)
	}

	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, fmt.Errorf("behavior config %s is empty", path)
	}

	var b Behavior
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("parsing behavior config %s: %w", path, err)
	}

	return &b, nil
}

// normalizeTools rewrites every enabled-with-no-parameters tool entry into an
// explicit empty object. Some encoders render an empty map as [], and the
// endpoint rejects anything but a literal {} there.
func normalizeTools(tools []Tool) []Tool {
	if len(tools) == 0 {
		return nil
	}

	out := make([]Tool, 0, len(tools))
	for _, tool := range tools {
		normalized := make(Tool, len(tool))
		for name, conf := range tool {
			normalized[name] = normalizeToolConfig(conf)
		}
		out = append(out, normalized)
	}

	return out
}

func normalizeToolConfig(conf json.RawMessage) json.RawMessage {
	switch strings.TrimSpace(string(conf)) {
	case "", "null", "[]", "true":
		return json.RawMessage("{}")
	}
	return conf
}
