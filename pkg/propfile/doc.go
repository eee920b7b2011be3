// Package propfile 读取 key=value 形式的变量文件，生成 [varsub.Store]。
//
// 定位符支持三种形式：
//   - 本地路径：vars.properties、/etc/app/vars.properties
//   - file URL：file:///etc/app/vars.properties、file://localhost/etc/app/vars.properties
//   - http(s) URL：失败时按指数退避重试
//
// 文件格式为 Java properties，值按原样保留，不做 ${...} 展开（展开由 varsub 负责）。
//
// 示例：
//
//	l := propfile.New(propfile.WithHostname(true))
//	vars, err := l.LoadAll(ctx, []string{"conf/common.properties", "conf/%s.properties"})
package propfile
