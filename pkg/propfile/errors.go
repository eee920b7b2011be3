package propfile

import "fmt"

// LoadError 某个定位符读取或解析失败。
//
// 定位符不存在时 Err 包装 [fs.ErrNotExist]，可用 errors.Is 判断。
type LoadError struct {
	Locator string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load variables from %s: %v", e.Locator, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
