package varsub

import (
	"log/slog"
	"strings"
)

// Mode 替换模式：是否严格校验残留占位符、是否记录每次替换。
//
// 四种组合分别对应 [Simple]、[SimpleWithLogging]、[Strict]、[StrictWithLogging]。
type Mode struct {
	Strict  bool
	Verbose bool
}

var (
	// Simple 残留的占位符只记录警告。
	Simple = Mode{}
	// SimpleWithLogging 同 [Simple]，并以 info 级别记录每次替换。
	SimpleWithLogging = Mode{Verbose: true}
	// Strict 残留的占位符返回 [UnresolvedError]。
	Strict = Mode{Strict: true}
	// StrictWithLogging 同 [Strict]，并以 info 级别记录每次替换。
	StrictWithLogging = Mode{Strict: true, Verbose: true}
)

// 配置中使用的模式名称，见 [ParseMode]。
const (
	ModeSimple            = "SIMPLE"              // [Simple]
	ModeSimpleWithLogging = "SIMPLE_WITH_LOGGING" // [SimpleWithLogging]
	ModeStrict            = "STRICT"              // [Strict]
	ModeStrictWithLogging = "STRICT_WITH_LOGGING" // [StrictWithLogging]

	// DefaultMode 未配置时使用的模式名称。
	DefaultMode = ModeSimple
)

var modesByName = map[string]Mode{
	ModeSimple:            Simple,
	ModeSimpleWithLogging: SimpleWithLogging,
	ModeStrict:            Strict,
	ModeStrictWithLogging: StrictWithLogging,
}

// deprecatedModeNames 旧版配置中的小驼峰名称。
var deprecatedModeNames = map[string]string{
	"simple":            ModeSimple,
	"simpleWithLogging": ModeSimpleWithLogging,
	"strict":            ModeStrict,
	"strictWithLogging": ModeStrictWithLogging,
}

// ModeNames 返回所有规范的模式名称。
func ModeNames() []string {
	return []string{ModeSimple, ModeSimpleWithLogging, ModeStrict, ModeStrictWithLogging}
}

// ParseMode 按名称查找替换模式。
//
// 空白名称返回默认模式 SIMPLE；旧版小驼峰名称可用但会记录弃用警告；
// 其他名称返回 [UnknownModeError]，不会静默回退。
func ParseMode(name string) (Mode, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Simple, nil
	}
	if m, ok := modesByName[name]; ok {
		return m, nil
	}
	if canonical, ok := deprecatedModeNames[name]; ok {
		slog.Warn("Deprecated substitution type", "name", name, "use", canonical)
		return modesByName[canonical], nil
	}

	return Mode{}, &UnknownModeError{Name: name, Suggestion: suggest(name, ModeNames())}
}

// MustParseMode 调用 [ParseMode] 并在失败时 panic。
func MustParseMode(name string) Mode {
	m, err := ParseMode(name)
	if err != nil {
		panic(err)
	}

	return m
}

// String 返回规范名称。
func (m Mode) String() string {
	switch {
	case m.Strict && m.Verbose:
		return ModeStrictWithLogging
	case m.Strict:
		return ModeStrict
	case m.Verbose:
		return ModeSimpleWithLogging
	default:
		return ModeSimple
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed

	return nil
}
