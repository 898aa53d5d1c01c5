package style

import "github.com/sandeepkv93/checklist/internal/model"

var FontFamilies = []string{
	"Arial, sans-serif",
	"Helvetica, sans-serif",
	"Verdana, sans-serif",
	"Trebuchet MS, sans-serif",
	"Georgia, serif",
	"Times New Roman, serif",
	"Courier New, monospace",
	"system-ui, sans-serif",
}

var FontSizes = []string{"12px", "14px", "16px", "18px", "20px", "24px"}

// Presets returns the choices for a font field, or nil for colors.
func Presets(field model.StyleField) []string {
	switch {
	case field.IsFontFamily():
		return FontFamilies
	case field.IsFontSize():
		return FontSizes
	default:
		return nil
	}
}

// NextPreset returns the preset after current, wrapping around. A value
// that is not a preset moves to the first one.
func NextPreset(field model.StyleField, current string) (string, bool) {
	choices := Presets(field)
	if len(choices) == 0 {
		return "", false
	}
	for i, c := range choices {
		if c == current {
			return choices[(i+1)%len(choices)], true
		}
	}
	return choices[0], true
}
