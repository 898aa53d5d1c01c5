package model

// StyleSettings is the presentation record edited by the style editor.
// JSON names match the persisted styleSettings key.
type StyleSettings struct {
	InputTextColor  string `json:"inputTextColor"`
	InputBgColor    string `json:"inputBgColor"`
	InputFontFamily string `json:"inputFontFamily"`
	InputFontSize   string `json:"inputFontSize"`
	ListTextColor   string `json:"listTextColor"`
	ListBgColor     string `json:"listBgColor"`
	ListFontFamily  string `json:"listFontFamily"`
	ListFontSize    string `json:"listFontSize"`
	MainBgColor     string `json:"mainBgColor"`
}

type StyleField string

const (
	FieldInputTextColor  StyleField = "inputTextColor"
	FieldInputBgColor    StyleField = "inputBgColor"
	FieldInputFontFamily StyleField = "inputFontFamily"
	FieldInputFontSize   StyleField = "inputFontSize"
	FieldListTextColor   StyleField = "listTextColor"
	FieldListBgColor     StyleField = "listBgColor"
	FieldListFontFamily  StyleField = "listFontFamily"
	FieldListFontSize    StyleField = "listFontSize"
	FieldMainBgColor     StyleField = "mainBgColor"
)

// StyleFields lists every field in editor order.
var StyleFields = []StyleField{
	FieldInputTextColor,
	FieldInputBgColor,
	FieldInputFontFamily,
	FieldInputFontSize,
	FieldListTextColor,
	FieldListBgColor,
	FieldListFontFamily,
	FieldListFontSize,
	FieldMainBgColor,
}

func (f StyleField) IsValid() bool {
	switch f {
	case FieldInputTextColor, FieldInputBgColor, FieldInputFontFamily, FieldInputFontSize,
		FieldListTextColor, FieldListBgColor, FieldListFontFamily, FieldListFontSize,
		FieldMainBgColor:
		return true
	default:
		return false
	}
}

func (f StyleField) IsColor() bool {
	switch f {
	case FieldInputTextColor, FieldInputBgColor, FieldListTextColor, FieldListBgColor, FieldMainBgColor:
		return true
	default:
		return false
	}
}

func (f StyleField) IsFontFamily() bool {
	return f == FieldInputFontFamily || f == FieldListFontFamily
}

func (f StyleField) IsFontSize() bool {
	return f == FieldInputFontSize || f == FieldListFontSize
}

func (f StyleField) Label() string {
	switch f {
	case FieldInputTextColor:
		return "Input text color"
	case FieldInputBgColor:
		return "Input background"
	case FieldInputFontFamily:
		return "Input font family"
	case FieldInputFontSize:
		return "Input font size"
	case FieldListTextColor:
		return "List text color"
	case FieldListBgColor:
		return "List background"
	case FieldListFontFamily:
		return "List font family"
	case FieldListFontSize:
		return "List font size"
	case FieldMainBgColor:
		return "Main background"
	default:
		return string(f)
	}
}

func DefaultStyleSettings() StyleSettings {
	return StyleSettings{
		InputTextColor:  "#000000",
		InputBgColor:    "#ffffff",
		InputFontFamily: "system-ui, sans-serif",
		InputFontSize:   "16px",
		ListTextColor:   "#000000",
		ListBgColor:     "#f3f4f6",
		ListFontFamily:  "system-ui, sans-serif",
		ListFontSize:    "16px",
		MainBgColor:     "#ffffff",
	}
}

// Get returns the value of f, or "" for an unknown field.
func (s StyleSettings) Get(f StyleField) string {
	switch f {
	case FieldInputTextColor:
		return s.InputTextColor
	case FieldInputBgColor:
		return s.InputBgColor
	case FieldInputFontFamily:
		return s.InputFontFamily
	case FieldInputFontSize:
		return s.InputFontSize
	case FieldListTextColor:
		return s.ListTextColor
	case FieldListBgColor:
		return s.ListBgColor
	case FieldListFontFamily:
		return s.ListFontFamily
	case FieldListFontSize:
		return s.ListFontSize
	case FieldMainBgColor:
		return s.MainBgColor
	default:
		return ""
	}
}

// With returns a copy with f set to value. Unknown fields return s
// unchanged and false.
func (s StyleSettings) With(f StyleField, value string) (StyleSettings, bool) {
	switch f {
	case FieldInputTextColor:
		s.InputTextColor = value
	case FieldInputBgColor:
		s.InputBgColor = value
	case FieldInputFontFamily:
		s.InputFontFamily = value
	case FieldInputFontSize:
		s.InputFontSize = value
	case FieldListTextColor:
		s.ListTextColor = value
	case FieldListBgColor:
		s.ListBgColor = value
	case FieldListFontFamily:
		s.ListFontFamily = value
	case FieldListFontSize:
		s.ListFontSize = value
	case FieldMainBgColor:
		s.MainBgColor = value
	default:
		return s, false
	}
	return s, true
}
