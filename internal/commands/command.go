package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/checklist/internal/model"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeClear   Type = "clear"
	TypeProfile Type = "profile"
	TypeStyle   Type = "style"
	TypeExport  Type = "export"
	TypeImport  Type = "import"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type ProfileAction string

const (
	ProfileNew    ProfileAction = "new"
	ProfileSwitch ProfileAction = "switch"
	ProfileDelete ProfileAction = "delete"
	ProfileRename ProfileAction = "rename"
)

type AddArgs struct {
	Text string
}

// ProfileArgs.Ref is an id or a name; Name is set for new and rename.
type ProfileArgs struct {
	Action ProfileAction
	Ref    string
	Name   string
}

// StyleArgs with Reset set restores the defaults and ignores Field.
type StyleArgs struct {
	Reset bool
	Field model.StyleField
	Value string
}

type PathArgs struct {
	Path string
}

type Command struct {
	Type    Type
	Raw     string
	Add     *AddArgs
	Profile *ProfileArgs
	Style   *StyleArgs
	Path    *PathArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeClear:
		if len(args) != 0 {
			return Command{}, invalid("clear takes no arguments")
		}
		return Command{Type: TypeClear, Raw: input}, nil
	case TypeProfile:
		return parseProfile(input, args)
	case TypeStyle:
		return parseStyle(input, args)
	case TypeExport, TypeImport:
		if len(args) == 0 {
			return Command{}, invalid(head + " requires a file path")
		}
		return Command{Type: Type(head), Raw: input, Path: &PathArgs{Path: strings.Join(args, " ")}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func invalid(msg string) *CommandError {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: msg}
}

func parseAdd(raw string, args []string) (Command, error) {
	text := strings.Join(args, " ")
	if text == "" {
		return Command{}, invalid("add requires task text")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text}}, nil
}

func parseProfile(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("profile requires new, switch, delete or rename")
	}
	action := ProfileAction(strings.ToLower(args[0]))
	rest := args[1:]
	out := &ProfileArgs{Action: action}
	switch action {
	case ProfileNew:
		if len(rest) == 0 {
			return Command{}, invalid("profile new requires a name")
		}
		out.Name = strings.Join(rest, " ")
	case ProfileSwitch, ProfileDelete:
		if len(rest) == 0 {
			return Command{}, invalid(fmt.Sprintf("profile %s requires an id or name", action))
		}
		out.Ref = strings.Join(rest, " ")
	case ProfileRename:
		if len(rest) < 2 {
			return Command{}, invalid("profile rename requires an id or name and a new name")
		}
		out.Ref = rest[0]
		out.Name = strings.Join(rest[1:], " ")
	default:
		return Command{}, invalid(fmt.Sprintf("unknown profile action: %s", args[0]))
	}
	return Command{Type: TypeProfile, Raw: raw, Profile: out}, nil
}

func parseStyle(raw string, args []string) (Command, error) {
	if len(args) == 1 && strings.EqualFold(args[0], "reset") {
		return Command{Type: TypeStyle, Raw: raw, Style: &StyleArgs{Reset: true}}, nil
	}
	if len(args) < 2 {
		return Command{}, invalid("style requires a field and a value, or reset")
	}
	field, ok := lookupField(args[0])
	if !ok {
		return Command{}, invalid(fmt.Sprintf("unknown style field: %s", args[0]))
	}
	return Command{Type: TypeStyle, Raw: raw, Style: &StyleArgs{Field: field, Value: strings.Join(args[1:], " ")}}, nil
}

func lookupField(name string) (model.StyleField, bool) {
	for _, f := range model.StyleFields {
		if strings.EqualFold(string(f), name) {
			return f, true
		}
	}
	return "", false
}
