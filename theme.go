package bramble

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Theme holds the style tokens widgets read when they have no explicit
// override. A theme is shared by reference between widgets and is never
// copied into them; see WidgetNode.ResolvedTheme.
type Theme struct {
	StandardFontSize int `yaml:"standard_font_size"`
	ButtonFontSize   int `yaml:"button_font_size"`
	TextBoxFontSize  int `yaml:"text_box_font_size"`
	TooltipFontSize  int `yaml:"tooltip_font_size"`

	WindowCornerRadius int `yaml:"window_corner_radius"`
	WindowHeaderHeight int `yaml:"window_header_height"`
	TooltipPadding     int `yaml:"tooltip_padding"`

	TextColor         Color `yaml:"text_color"`
	DisabledTextColor Color `yaml:"disabled_text_color"`
	BorderColor       Color `yaml:"border_color"`
	WindowFillColor   Color `yaml:"window_fill_color"`
	TooltipFillColor  Color `yaml:"tooltip_fill_color"`
	TooltipTextColor  Color `yaml:"tooltip_text_color"`
	FocusColor        Color `yaml:"focus_color"`
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() *Theme {
	return &Theme{
		StandardFontSize: 16,
		ButtonFontSize:   20,
		TextBoxFontSize:  20,
		TooltipFontSize:  15,

		WindowCornerRadius: 2,
		WindowHeaderHeight: 30,
		TooltipPadding:     6,

		TextColor:         Color{1, 1, 1, 0.63},
		DisabledTextColor: Color{1, 1, 1, 0.31},
		BorderColor:       Color{0.11, 0.11, 0.11, 1},
		WindowFillColor:   Color{0.18, 0.18, 0.18, 0.9},
		TooltipFillColor:  Color{0, 0, 0, 1},
		TooltipTextColor:  Color{1, 1, 1, 1},
		FocusColor:        Color{0.35, 0.55, 0.9, 1},
	}
}

// LoadTheme parses a YAML theme document. Keys that are absent keep their
// DefaultTheme values. Colors are written as "#rrggbb" or "#rrggbbaa".
func LoadTheme(data []byte) (*Theme, error) {
	t := DefaultTheme()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("bramble: parse theme: %w", err)
	}
	return t, nil
}

// MarshalTheme encodes t as YAML in the format LoadTheme reads.
func MarshalTheme(t *Theme) ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("bramble: encode theme: %w", err)
	}
	return data, nil
}

// UnmarshalYAML decodes a hex color string.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseHexColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML encodes c as "#rrggbbaa".
func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

// Hex formats c as "#rrggbbaa" (straight alpha).
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x",
		to8(c.R), to8(c.G), to8(c.B), to8(c.A))
}

func to8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" into a Color.
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("bramble: invalid color %q", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("bramble: invalid color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}
