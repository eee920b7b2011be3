package varsub

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var (
	// ErrSelfReference 变量展开无法收敛（自引用或循环定义）。
	ErrSelfReference = errors.New("self-referential or circular variable")
	// ErrUnresolved 替换后仍残留占位符。
	ErrUnresolved = errors.New("undefined for variable substitution")
	// ErrUnknownMode 未知的替换模式名称。
	ErrUnknownMode = errors.New("unknown substitution type")
)

// ExpansionError 变量 Key 的展开在某一层中停止变化却仍包含占位符。
type ExpansionError struct {
	Key      string // 正在展开的变量
	Variable string // 引发失败的占位符
}

func (e *ExpansionError) Error() string {
	if e.Variable == "" {
		return fmt.Sprintf("expansion failure [%s], self-referential variables?", e.Key)
	}

	return fmt.Sprintf("expansion failure [%s] at %s, self-referential variables?", e.Key, e.Variable)
}

func (e *ExpansionError) Unwrap() error {
	return ErrSelfReference
}

// UnresolvedError 严格模式下残留的占位符。
type UnresolvedError struct {
	Token      string
	Suggestion string // 名称相近的已知变量，可能为空
}

func (e *UnresolvedError) Error() string {
	msg := e.Token + " is undefined for variable substitution"
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %s?)", e.Suggestion)
	}

	return msg
}

func (e *UnresolvedError) Unwrap() error {
	return ErrUnresolved
}

// UnknownModeError 配置中的替换模式名称无法识别。
type UnknownModeError struct {
	Name       string
	Suggestion string
}

func (e *UnknownModeError) Error() string {
	msg := fmt.Sprintf("unknown substitution type %q", e.Name)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(", did you mean %s?", e.Suggestion)
	}

	return msg
}

func (e *UnknownModeError) Unwrap() error {
	return ErrUnknownMode
}

// suggest 从 candidates 中挑选与 name 最接近的名称。
//
// 先做子序列模糊匹配，没有结果时退回到编辑距离不超过 2 的候选。
func suggest(name string, candidates []string) string {
	if name == "" || len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDist := "", 3
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}

	return best
}
