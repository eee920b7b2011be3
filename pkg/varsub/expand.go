package varsub

import (
	"log/slog"
	"strings"
)

// Expander 把原始变量表展开为最终值。
//
// 零值使用默认占位符语法。Expander 无内部状态，可并发使用。
type Expander struct {
	Markers Markers
}

// NewExpander 创建使用指定占位符语法的 Expander。
func NewExpander(m Markers) *Expander {
	return &Expander{Markers: m}
}

// layer 某一命名空间的占位符与对应值，每次 Expand 只计算一次。
type layer struct {
	tokens  []string
	values  []string
	selfRef []bool // 值中包含自身占位符，替换永远无法消除该占位符
}

func newLayer(m Markers, s *Store) layer {
	var l layer
	for name, value := range s.All() {
		token := m.Token(name)
		l.tokens = append(l.tokens, token)
		l.values = append(l.values, value)
		l.selfRef = append(l.selfRef, strings.Contains(value, token))
	}

	return l
}

func (l layer) containsAny(text string) bool {
	for _, token := range l.tokens {
		if strings.Contains(text, token) {
			return true
		}
	}

	return false
}

// expand 在本层内反复替换，直到 value 不再包含本层的占位符。
func (l layer) expand(key, value string) (string, error) {
	for pass := 0; l.containsAny(value); pass++ {
		if pass > len(l.tokens) {
			// 振荡的循环 (a=${b}, b=${c}, c=${a}) 在此停止，残留占位符交由替换阶段处理
			slog.Warn("Variable expansion did not converge", "key", key, "value", value)

			return value, nil
		}

		expanded := value
		for i, token := range l.tokens {
			if !strings.Contains(expanded, token) {
				continue
			}
			if l.selfRef[i] {
				slog.Error("Expansion failure", "key", key, "variable", token)

				return "", &ExpansionError{Key: key, Variable: token}
			}
			expanded = strings.ReplaceAll(expanded, token, l.values[i])
		}

		if expanded == value {
			slog.Error("Expansion failure", "key", key)

			return "", &ExpansionError{Key: key}
		}
		value = expanded
	}

	return value, nil
}

// Expand 依次在 primary 与 secondary 各层中展开 primary 的每个变量。
//
// primary 的值会先去除首尾空白。各层按参数顺序参与展开，前面的层优先。
// 无法在任何层中找到的占位符原样保留；自引用的变量返回 [ExpansionError]。
// 返回的 Store 与 primary 的变量顺序一致，输入不会被修改。
func (e *Expander) Expand(primary *Store, secondary ...*Store) (*Store, error) {
	m := e.markers()

	custom := &Store{}
	for _, name := range primary.Names() {
		if value, ok := primary.Get(name); ok {
			custom.Set(name, strings.TrimSpace(value))
			continue
		}
		custom.Declare(name)
	}

	layers := make([]layer, 0, 1+len(secondary))
	layers = append(layers, newLayer(m, custom))
	for _, s := range secondary {
		layers = append(layers, newLayer(m, s))
	}

	result := &Store{}
	for _, name := range custom.names {
		value, ok := custom.Get(name)
		if !ok {
			result.Declare(name)
			continue
		}

		slog.Debug("Expanding variable", "key", name, "value", value)
		for _, l := range layers {
			var err error
			value, err = l.expand(name, value)
			if err != nil {
				return nil, err
			}
		}
		result.Set(name, value)
	}

	return result, nil
}

func (e *Expander) markers() Markers {
	if e == nil {
		return DefaultMarkers()
	}

	return NewMarkers(e.Markers.Prefix, e.Markers.Postfix)
}
