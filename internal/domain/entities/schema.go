package entities

// Style is the presentation envelope shared by every card type.
type Style struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
	BorderColor     string `json:"borderColor,omitempty"`
	BorderWidth     *int   `json:"borderWidth,omitempty"`
	BorderRadius    *int   `json:"borderRadius,omitempty"`
	Padding         *int   `json:"padding,omitempty"`
	Margin          *int   `json:"margin,omitempty"`
	Shadow          *bool  `json:"shadow,omitempty"`
}

type TextConfig struct {
	Content   string `json:"content"`
	FontSize  int    `json:"fontSize,omitempty"`
	Color     string `json:"color,omitempty"`
	Alignment string `json:"alignment,omitempty"` // left, center, right
}

type ImageConfig struct {
	URL       string `json:"url"`
	Alt       string `json:"alt,omitempty"`
	ObjectFit string `json:"objectFit,omitempty"` // cover, contain, fill
}

type LinkConfig struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Favicon     string `json:"favicon,omitempty"`
}

type StatsConfig struct {
	Value      float64 `json:"value"`
	Label      string  `json:"label"`
	Trend      string  `json:"trend,omitempty"` // up, down, neutral
	Percentage float64 `json:"percentage,omitempty"`
}

type WeatherConfig struct {
	Location string `json:"location"`
	APIKey   string `json:"apiKey,omitempty"`
	Units    string `json:"units,omitempty"` // metric, imperial
}

type TodoItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type TodoConfig struct {
	Items         []TodoItem `json:"items"`
	ShowCompleted bool       `json:"showCompleted"`
}

type ChartConfig struct {
	Type    string         `json:"type"` // line, bar, pie, doughnut
	Data    map[string]any `json:"data"`
	Options map[string]any `json:"options,omitempty"`
}

// CustomConfig carries free-form content rendered by the client.
type CustomConfig struct {
	Content map[string]any `json:"content"`
}

// Schema describes one variant of the configuration union.
type Schema struct {
	Type CardType
	// Key is the config field holding the variant payload.
	Key string
	// New returns a zero value of the typed variant.
	New func() any

	builtin Config
}

// Default returns a copy of the built-in default configuration.
func (s Schema) Default() Config {
	return s.builtin.Clone()
}

// Decode decodes the variant payload of cfg into its typed form. A config
// without the payload yields (nil, nil).
func (s Schema) Decode(cfg Config) (any, error) {
	raw, ok := cfg[s.Key]
	if !ok || raw == nil {
		return nil, nil
	}
	v := s.New()
	if err := decodeInto(raw, v); err != nil {
		return nil, InvalidInput("config."+s.Key, err.Error())
	}
	return v, nil
}

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

type builtinDefault struct {
	Text    *TextConfig    `json:"text,omitempty"`
	Image   *ImageConfig   `json:"image,omitempty"`
	Link    *LinkConfig    `json:"link,omitempty"`
	Stats   *StatsConfig   `json:"stats,omitempty"`
	Weather *WeatherConfig `json:"weather,omitempty"`
	Todo    *TodoConfig    `json:"todo,omitempty"`
	Chart   *ChartConfig   `json:"chart,omitempty"`
	Custom  *CustomConfig  `json:"custom,omitempty"`
	Style   *Style         `json:"style,omitempty"`
}

// registry is built once at init and never mutated afterwards.
var registry = map[CardType]Schema{
	CardTypeText: {
		Type: CardTypeText, Key: "text", New: func() any { return &TextConfig{} },
		builtin: toConfig(builtinDefault{
			Text: &TextConfig{Content: "This is a text card", FontSize: 16, Color: "#333333", Alignment: "left"},
			Style: &Style{
				BackgroundColor: "#ffffff",
				BorderRadius:    intPtr(8),
				Padding:         intPtr(16),
				Shadow:          boolPtr(false),
			},
		}),
	},
	CardTypeImage: {
		Type: CardTypeImage, Key: "image", New: func() any { return &ImageConfig{} },
		builtin: toConfig(builtinDefault{
			Image: &ImageConfig{URL: "https://via.placeholder.com/300x200", Alt: "Sample image", ObjectFit: "cover"},
		}),
	},
	CardTypeLink: {
		Type: CardTypeLink, Key: "link", New: func() any { return &LinkConfig{} },
		builtin: toConfig(builtinDefault{
			Link: &LinkConfig{URL: "https://example.com", Title: "Sample link", Description: "This is a sample link"},
		}),
	},
	CardTypeStats: {
		Type: CardTypeStats, Key: "stats", New: func() any { return &StatsConfig{} },
		builtin: toConfig(builtinDefault{
			Stats: &StatsConfig{Value: 100, Label: "Statistics", Trend: "up", Percentage: 10},
		}),
	},
	CardTypeWeather: {
		Type: CardTypeWeather, Key: "weather", New: func() any { return &WeatherConfig{} },
		builtin: toConfig(builtinDefault{
			Weather: &WeatherConfig{Location: "London", Units: "metric"},
		}),
	},
	CardTypeTodo: {
		Type: CardTypeTodo, Key: "todo", New: func() any { return &TodoConfig{} },
		builtin: toConfig(builtinDefault{
			Todo: &TodoConfig{Items: []TodoItem{}, ShowCompleted: true},
		}),
	},
	CardTypeChart: {
		Type: CardTypeChart, Key: "chart", New: func() any { return &ChartConfig{} },
		builtin: toConfig(builtinDefault{
			Chart: &ChartConfig{
				Type: "line",
				Data: map[string]any{"labels": []any{}, "datasets": []any{}},
			},
		}),
	},
	CardTypeCustom: {
		Type: CardTypeCustom, Key: "custom", New: func() any { return &CustomConfig{} },
		builtin: toConfig(builtinDefault{
			Custom: &CustomConfig{Content: map[string]any{}},
		}),
	},
}

// SchemaFor looks up the schema of a card type.
func SchemaFor(t CardType) (Schema, bool) {
	s, ok := registry[t]
	return s, ok
}

// BuiltinDefault returns the hard-coded default for t, or false when t is
// not a card type.
func BuiltinDefault(t CardType) (Config, bool) {
	s, ok := registry[t]
	if !ok {
		return nil, false
	}
	return s.Default(), true
}
