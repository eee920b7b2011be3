package varsub

import "log/slog"

// Processor 组合展开与替换：自定义变量 → 系统属性 → 环境变量。
//
// System 与 Environment 是调用方提供的快照，为 nil 时对应的层为空。
// Processor 不持有可变状态，可在多个 goroutine 间共享。
type Processor struct {
	Markers     Markers
	Mode        Mode
	System      *Store
	Environment *Store
}

// NewProcessor 按配置字符串创建 Processor，并在此刻获取系统属性与环境变量快照。
//
// 未知的模式名称返回 [UnknownModeError]。
func NewProcessor(prefix, postfix, modeName string) (*Processor, error) {
	mode, err := ParseMode(modeName)
	if err != nil {
		return nil, err
	}

	return &Processor{
		Markers:     NewMarkers(prefix, postfix),
		Mode:        mode,
		System:      SystemProperties(),
		Environment: Environment(),
	}, nil
}

// Resolve 展开原始变量表。
func (p *Processor) Resolve(raw *Store) (*Store, error) {
	return NewExpander(p.Markers).Expand(raw, p.System, p.Environment)
}

// Process 展开 raw 并替换到 document 中。
//
// 任何致命错误都不会返回部分结果。
func (p *Processor) Process(document string, raw *Store) (string, error) {
	resolved, err := p.Resolve(raw)
	if err != nil {
		return "", err
	}
	slog.Debug("Performing configuration variable substitution",
		"variables", resolved.Len(), "mode", p.Mode, "prefix", p.Markers.Prefix, "postfix", p.Markers.Postfix)

	return Substitute(document, resolved, p.Markers, p.Mode)
}

// Process 是一次性处理的入口：解析模式、获取快照、展开并替换。
//
// 空白的 prefix、postfix、modeName 分别回退为 "${"、"}"、SIMPLE。
func Process(document string, raw *Store, prefix, postfix, modeName string) (string, error) {
	p, err := NewProcessor(prefix, postfix, modeName)
	if err != nil {
		return "", err
	}

	return p.Process(document, raw)
}
