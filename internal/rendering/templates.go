package rendering

// Color is a named accent color offered in the customize step.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"color"`
}

// palette is the accent color table. Order matters: the customize step
// addresses colors by index, and index 0 is the default selection.
var palette = []Color{
	{Name: "Violet", Hex: "#8B5CF6"},
	{Name: "Bleu", Hex: "#3B82F6"},
	{Name: "Vert", Hex: "#10B981"},
	{Name: "Rouge", Hex: "#EF4444"},
	{Name: "Orange", Hex: "#F59E0B"},
	{Name: "Rose", Hex: "#EC4899"},
	{Name: "Cyan", Hex: "#06B6D4"},
	{Name: "Indigo", Hex: "#6366F1"},
	{Name: "Amber", Hex: "#F59E0B"},
	{Name: "Emerald", Hex: "#10B981"},
	{Name: "Fuchsia", Hex: "#D946EF"},
	{Name: "Lime", Hex: "#84CC16"},
	{Name: "Sky", Hex: "#0EA5E9"},
	{Name: "Teal", Hex: "#14B8A6"},
	{Name: "Slate", Hex: "#64748B"},
	{Name: "Zinc", Hex: "#71717A"},
}

// TemplateInfo describes one gallery template.
type TemplateInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// templateRegistry lists the shipped layouts in gallery order.
var templateRegistry = []TemplateInfo{
	{Name: "Classique", Description: "Single column, generous whitespace"},
	{Name: "Colonne", Description: "Accent sidebar with contact and skills"},
	{Name: "Compact", Description: "Dense two-band layout for long careers"},
}

// TemplateCount returns the number of templates in the gallery.
func TemplateCount() int {
	return len(templateRegistry)
}

// Templates returns the gallery metadata in display order.
func Templates() []TemplateInfo {
	out := make([]TemplateInfo, len(templateRegistry))
	copy(out, templateRegistry)
	return out
}

// PaletteCount returns the number of accent colors.
func PaletteCount() int {
	return len(palette)
}

// Palette returns the accent colors in display order.
func Palette() []Color {
	out := make([]Color, len(palette))
	copy(out, palette)
	return out
}

// ColorAt returns the accent color at the given palette index.
func ColorAt(index int) (Color, error) {
	if index < 0 || index >= len(palette) {
		return Color{}, &SelectionError{Kind: "color", Index: index, Count: len(palette)}
	}
	return palette[index], nil
}
