package varsub

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// entry 是 Store 中的单个变量；ok 为 false 表示变量已声明但没有值。
type entry struct {
	value string
	ok    bool
}

// Store 有序的变量表，按插入顺序迭代。
//
// 零值可直接使用。Store 不是并发安全的，但 [Expander] 与 [Substitute]
// 只读取输入，因此同一个 Store 可以被多个 goroutine 同时用作输入。
type Store struct {
	names   []string
	entries map[string]entry
}

// NewStore 由 name, value 交替排列的参数创建 Store。
//
// 参数个数为奇数时，最后一个 name 被声明为无值。
func NewStore(pairs ...string) *Store {
	s := &Store{}
	for i := 0; i < len(pairs); i += 2 {
		if i+1 < len(pairs) {
			s.Set(pairs[i], pairs[i+1])
			continue
		}
		s.Declare(pairs[i])
	}

	return s
}

// FromMap 由 map 创建 Store，按 key 排序以保证迭代顺序稳定。
func FromMap(m map[string]string) *Store {
	s := &Store{}
	for _, name := range slices.Sorted(maps.Keys(m)) {
		s.Set(name, m[name])
	}

	return s
}

// FromEnviron 由 "KEY=value" 形式的列表创建 Store（与 os.Environ 格式一致）。
//
// 不含 "=" 的条目被忽略；重复的 key 以后出现者为准。
func FromEnviron(environ []string) *Store {
	s := &Store{}
	for _, pair := range environ {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			continue
		}
		s.Set(k, v)
	}

	return s
}

func (s *Store) put(name string, e entry) {
	if s.entries == nil {
		s.entries = make(map[string]entry)
	}
	if _, exists := s.entries[name]; !exists {
		s.names = append(s.names, name)
	}
	s.entries[name] = e
}

// Set 设置变量值；已存在的变量保留原有位置。
func (s *Store) Set(name, value string) {
	s.put(name, entry{value: value, ok: true})
}

// Declare 声明一个没有值的变量。
//
// 无值变量在替换时被视为不存在，对应的占位符保持原样。
func (s *Store) Declare(name string) {
	s.put(name, entry{})
}

// Get 返回变量值；变量不存在或没有值时 ok 为 false。
func (s *Store) Get(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	e := s.entries[name]

	return e.value, e.ok
}

// Has 报告变量是否已声明（无论是否有值）。
func (s *Store) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.entries[name]

	return ok
}

// Len 返回已声明变量的数量。
func (s *Store) Len() int {
	if s == nil {
		return 0
	}

	return len(s.names)
}

// Names 返回按插入顺序排列的变量名副本。
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}

	return slices.Clone(s.names)
}

// All 按插入顺序迭代所有有值的变量。
func (s *Store) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if s == nil {
			return
		}
		for _, name := range s.names {
			e := s.entries[name]
			if !e.ok {
				continue
			}
			if !yield(name, e.value) {
				return
			}
		}
	}
}

// Merge 把 other 的变量写入 s，同名变量以 other 为准。
func (s *Store) Merge(other *Store) {
	if other == nil {
		return
	}
	for _, name := range other.names {
		s.put(name, other.entries[name])
	}
}

// Clone 返回 s 的深拷贝。
func (s *Store) Clone() *Store {
	out := &Store{}
	out.Merge(s)

	return out
}

// Map 返回所有有值变量的 map 副本。
func (s *Store) Map() map[string]string {
	out := make(map[string]string, s.Len())
	for name, value := range s.All() {
		out[name] = value
	}

	return out
}

// String 以 "key=value" 每行一条的形式输出，用于诊断。
func (s *Store) String() string {
	var b strings.Builder
	for name, value := range s.All() {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(value)
		b.WriteByte('\n')
	}

	return b.String()
}
