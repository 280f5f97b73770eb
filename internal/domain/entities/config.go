package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Config is the structured configuration payload of a card. The variant
// for a card type lives under that type's payload key (see Schema), the
// shared style envelope under "style". Keys the schema does not know about
// are kept as-is.
type Config map[string]any

// ParseConfig decodes the serialized form of a configuration. Anything
// other than a JSON object is rejected.
func ParseConfig(raw []byte) (Config, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("config must be a JSON object")
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg == nil {
		cfg = Config{}
	}
	return cfg, nil
}

// ConfigFromValue converts an arbitrary decoded JSON value into a Config.
// It fails unless v is an object.
func ConfigFromValue(v any) (Config, error) {
	switch m := v.(type) {
	case Config:
		return m.Clone(), nil
	case map[string]any:
		return Config(m).Clone(), nil
	default:
		return nil, fmt.Errorf("config must be a JSON object, got %T", v)
	}
}

// Serialize encodes the configuration for storage. A nil config is stored
// as an empty object.
func (c Config) Serialize() (string, error) {
	if c == nil {
		return "{}", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(b), nil
}

// Clone returns a deep copy.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = cloneValue(v)
	}
	return out
}

// IsEmpty reports whether the config has no keys.
func (c Config) IsEmpty() bool {
	return len(c) == 0
}

// Style decodes the shared style envelope. A config without one yields nil.
func (c Config) Style() (*Style, error) {
	raw, ok := c["style"]
	if !ok || raw == nil {
		return nil, nil
	}
	var s Style
	if err := decodeInto(raw, &s); err != nil {
		return nil, fmt.Errorf("decode style: %w", err)
	}
	return &s, nil
}

// UnmarshalJSON keeps a JSON null as a nil config instead of failing.
func (c *Config) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = nil
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*c = m
	return nil
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = cloneValue(vv)
		}
		return m
	case Config:
		return t.Clone()
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = cloneValue(vv)
		}
		return s
	default:
		return v
	}
}

func decodeInto(v any, dst any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

func toConfig(v any) Config {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("entities: encode built-in config: %v", err))
	}
	cfg, err := ParseConfig(b)
	if err != nil {
		panic(fmt.Sprintf("entities: decode built-in config: %v", err))
	}
	return cfg
}
