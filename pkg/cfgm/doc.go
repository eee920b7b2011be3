// Package cfgm 提供通用的配置加载功能。
//
// 支持 YAML/JSON/properties，按默认值、配置文件、环境变量与 CLI flags 逐层覆盖。
// 配置 key 使用 json tag 统一描述，三种文件格式共享同一套 key。
//
// # 加载优先级 (从低到高)
//
//  1. 默认值 - 通过 defaultConfig 参数传入
//  2. 配置文件 - 通过 [WithConfigPaths] 或 [WithAppName] 设置
//  3. 环境变量(前缀) - 通过 [WithEnvPrefix] 自动生成绑定
//  4. CLI flags - 通过 [WithCommand] 选项设置，最高优先级
//
// # 快速开始
//
//	type Config struct {
//	    Prefix  string        `json:"varprefix"`
//	    Impl    string        `json:"impl"`
//	    Timeout time.Duration `json:"timeout"`
//	}
//
//	cfg, err := cfgm.LoadCmd(cmd, DefaultConfig(), "varsub",
//	    cfgm.WithEnvPrefix("VARSUB_"),
//	)
//
// # 配置文件
//
// [WithAppName] 会生成默认搜索路径（见 [DefaultPaths]），使用 [WithConfigPaths] 可覆盖。
// 文件格式由扩展名决定：.json 为 JSON，.properties 为 Java properties，其余按 YAML 解析。
// properties 文件的点分隔 key 对应嵌套结构：
//
//	# bootstrap.properties
//	variable-substitution.varprefix=${
//	variable-substitution.impl=STRICT
//	variable-substitution.properties.url=conf/common.properties,conf/%s.properties
//
// 逗号分隔的字符串可以解码为 []string。文件中未在结构体里定义的 key 会记录警告。
//
// # 变量替换
//
// 解析前会用系统属性与环境变量替换文件中的 ${NAME}（SIMPLE 模式，未定义的占位符保持原样）：
//
//	server:
//	  addr: "${VARSUB_ADDR}"
//
// 使用 [WithoutSubstitution] 可禁用该行为。
//
// # CLI Flag 映射
//
// 仅替换 "." 为 "-"，且只读取显式设置的 flag：
//   - server.addr → --server-addr
//   - variable-substitution.impl → --variable-substitution-impl
package cfgm
