// Author: lwmacct (https://github.com/lwmacct)
package cfgm_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lwmacct/251207-go-pkg-varsub/pkg/cfgm"
)

// Example_defaultPaths 演示 DefaultPaths 的搜索顺序。
func Example_defaultPaths() {
	paths := cfgm.DefaultPaths()
	fmt.Println("基础路径数量:", len(paths))

	paths = cfgm.DefaultPaths("varsub")
	fmt.Println("带应用名路径数量:", len(paths))

	// Output:
	// 基础路径数量: 3
	// 带应用名路径数量: 6
}

// Example_load 演示配置文件不存在时使用默认值。
func Example_load() {
	type Config struct {
		Impl    string `json:"impl"`
		Lenient bool   `json:"lenient"`
	}

	cfg, err := cfgm.Load(Config{Impl: "SIMPLE"},
		cfgm.WithConfigPaths("nonexistent.yaml"),
	)
	if err != nil {
		fmt.Println("加载失败:", err)

		return
	}

	fmt.Println("Impl:", cfg.Impl)
	fmt.Println("Lenient:", cfg.Lenient)

	// Output:
	// Impl: SIMPLE
	// Lenient: false
}

// Example_load_withProperties 演示加载 properties 格式的引导配置。
func Example_load_withProperties() {
	type Substitution struct {
		Prefix string   `json:"varprefix"`
		Impl   string   `json:"impl"`
		URLs   []string `json:"url"`
	}
	type Config struct {
		Substitution Substitution `json:"variable-substitution"`
	}

	dir, err := os.MkdirTemp("", "cfgm-example")
	if err != nil {
		fmt.Println("创建临时目录失败:", err)

		return
	}
	defer func() { _ = os.RemoveAll(dir) }()

	content := "variable-substitution.impl=STRICT\nvariable-substitution.url=a.properties,b.properties\n"
	if err := os.WriteFile(filepath.Join(dir, "bootstrap.properties"), []byte(content), 0o600); err != nil {
		fmt.Println("写入失败:", err)

		return
	}

	cfg, err := cfgm.Load(Config{Substitution: Substitution{Prefix: "${", Impl: "SIMPLE"}},
		cfgm.WithBaseDir(dir),
		cfgm.WithConfigPaths("bootstrap.properties"),
	)
	if err != nil {
		fmt.Println("加载失败:", err)

		return
	}

	fmt.Println("Prefix:", cfg.Substitution.Prefix)
	fmt.Println("Impl:", cfg.Substitution.Impl)
	fmt.Println("URLs:", cfg.Substitution.URLs)

	// Output:
	// Prefix: ${
	// Impl: STRICT
	// URLs: [a.properties b.properties]
}

// Example_load_withJSONConfig 演示根据 .json 扩展名使用 JSON 解析器。
func Example_load_withJSONConfig() {
	type Config struct {
		Impl    string `json:"impl"`
		Lenient bool   `json:"lenient"`
	}

	tmpFile := filepath.Join(os.TempDir(), "cfgm_example_json_test.json")
	if err := os.WriteFile(tmpFile, []byte(`{"impl": "STRICT_WITH_LOGGING", "lenient": true}`), 0o600); err != nil {
		fmt.Println("创建临时文件失败:", err)

		return
	}
	defer func() { _ = os.Remove(tmpFile) }()

	cfg, err := cfgm.Load(Config{Impl: "SIMPLE"},
		cfgm.WithConfigPaths(tmpFile),
	)
	if err != nil {
		fmt.Println("加载失败:", err)

		return
	}

	fmt.Println("Impl:", cfg.Impl)
	fmt.Println("Lenient:", cfg.Lenient)

	// Output:
	// Impl: STRICT_WITH_LOGGING
	// Lenient: true
}
