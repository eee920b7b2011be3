package varsub

import (
	"regexp"
	"strings"
)

const (
	// DefaultPrefix 默认占位符前缀。
	DefaultPrefix = "${"
	// DefaultPostfix 默认占位符后缀。
	DefaultPostfix = "}"
)

// Markers 占位符语法：token = Prefix + name + Postfix。
//
// 没有转义机制，前后缀不应与变量名中的字符产生歧义。
type Markers struct {
	Prefix  string
	Postfix string
}

// DefaultMarkers 返回 ${ 与 } 组成的默认语法。
func DefaultMarkers() Markers {
	return Markers{Prefix: DefaultPrefix, Postfix: DefaultPostfix}
}

// NewMarkers 创建占位符语法，空白的前缀或后缀回退为默认值。
func NewMarkers(prefix, postfix string) Markers {
	return Markers{
		Prefix:  defaultIfBlank(prefix, DefaultPrefix),
		Postfix: defaultIfBlank(postfix, DefaultPostfix),
	}
}

// Token 返回变量对应的字面量占位符。
func (m Markers) Token(name string) string {
	return m.Prefix + name + m.Postfix
}

// ContainsAnyToken 报告 text 是否包含 names 中任一变量的占位符。
func (m Markers) ContainsAnyToken(text string, names []string) bool {
	for _, name := range names {
		if strings.Contains(text, m.Token(name)) {
			return true
		}
	}

	return false
}

// pattern 匹配 prefix + 非空白字符 + postfix，用于扫描残留占位符。
func (m Markers) pattern() *regexp.Regexp {
	return regexp.MustCompile(`(?s)` + regexp.QuoteMeta(m.Prefix) + `(\S*?)` + regexp.QuoteMeta(m.Postfix))
}

// FindUnresolved 返回 text 中第一个残留的占位符；没有则返回空字符串。
func (m Markers) FindUnresolved(text string) (string, bool) {
	if m.Prefix == "" || m.Postfix == "" {
		return "", false
	}
	match := m.pattern().FindStringSubmatch(text)
	if match == nil {
		return "", false
	}

	return m.Token(match[1]), true
}

func defaultIfBlank(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}

	return s
}
