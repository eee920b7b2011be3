package varsub

import (
	"log/slog"
	"strings"
)

// Substitute 把 vars 中每个变量的占位符以字面量方式替换到 input 中。
//
// 所有占位符在一次扫描中同时替换，写入的值不会再被其他变量替换，结果与 vars 的顺序无关。
// 值中残留的其他占位符原样写入。全部替换完成后扫描第一个残留的占位符，
// 严格模式返回 [UnresolvedError]，否则记录警告并返回替换结果。
// 无值的变量不参与替换。空的 vars 不是错误。
func Substitute(input string, vars *Store, m Markers, mode Mode) (string, error) {
	m = NewMarkers(m.Prefix, m.Postfix)

	pairs := make([]string, 0, 2*vars.Len())
	for name, value := range vars.All() {
		token := m.Token(name)
		if mode.Verbose {
			slog.Info("Replacing variable", "token", token, "value", value)
		}
		pairs = append(pairs, token, value)
	}

	out := input
	if len(pairs) > 0 {
		out = strings.NewReplacer(pairs...).Replace(input)
	}

	token, found := m.FindUnresolved(out)
	if !found {
		return out, nil
	}

	if mode.Strict {
		return "", &UnresolvedError{
			Token:      token,
			Suggestion: suggestToken(m, token, vars),
		}
	}
	slog.Warn(token+" is undefined for variable substitution", "token", token)

	return out, nil
}

// suggestToken 为残留的占位符挑选名称相近的已知变量。
func suggestToken(m Markers, token string, vars *Store) string {
	name := strings.TrimSuffix(strings.TrimPrefix(token, m.Prefix), m.Postfix)
	if s := suggest(name, vars.Names()); s != "" {
		return m.Token(s)
	}

	return ""
}
