// Package varsub 在文档被解析之前替换其中的 ${name} 占位符。
//
// 变量来自多个有序的命名空间（自定义变量文件、系统属性、环境变量）。
// 替换分两个阶段：先把自定义变量递归展开为最终值，再以字面量方式写入文档。
// 包本身不理解文档格式，XML、JSON、纯文本的处理方式完全相同。
//
// # 展开顺序
//
// 每个自定义变量依次在以下层中解析，每层内部反复替换直到不再出现该层的占位符：
//
//  1. 自定义变量本身
//  2. 系统属性 ([SystemProperties])
//  3. 环境变量 ([Environment])
//
// 值中直接引用自身（例如 a=${a}、a=x${a}）会返回 [ExpansionError]。
// 两个变量互相引用（a=${b}、b=${a}）在替换不再产生变化时同样返回 [ExpansionError]；
// 更长的振荡循环在有限轮次后停止，残留为未解析的占位符。
//
// # 替换模式
//
// 替换后会扫描残留的占位符，行为由 [Mode] 决定：
//
//   - SIMPLE - 记录警告，占位符原样保留
//   - SIMPLE_WITH_LOGGING - 同上，并以 info 级别记录每次替换
//   - STRICT - 返回 [UnresolvedError]
//   - STRICT_WITH_LOGGING - 同上，并记录每次替换
//
// # 快速开始
//
//	vars := varsub.NewStore("host", "db.internal", "url", "jdbc://${host}/app")
//	out, err := varsub.Process(xml, vars, "${", "}", "STRICT")
//
// 需要注入系统属性或环境变量快照时使用 [Processor]：
//
//	p := varsub.Processor{
//	    Markers:     varsub.DefaultMarkers(),
//	    Mode:        varsub.Strict,
//	    System:      varsub.SystemProperties(),
//	    Environment: varsub.FromEnviron([]string{"HOME=/srv"}),
//	}
//	out, err := p.Process(xml, vars)
package varsub
