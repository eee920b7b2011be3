package varsub

import (
	"os"
	"os/user"
	"runtime"
)

// Environment 返回当前进程环境变量的快照。
func Environment() *Store {
	return FromEnviron(os.Environ())
}

// SystemProperties 返回平台属性快照，overrides 依次覆盖同名属性。
//
// 属性名沿用常见的 JVM 命名，便于已有变量文件直接引用：
//
//   - os.name, os.arch
//   - user.name, user.home, user.dir
//   - java.io.tmpdir
//   - file.separator, path.separator, line.separator
//   - host.name, go.version
func SystemProperties(overrides ...*Store) *Store {
	s := &Store{}
	s.Set("os.name", runtime.GOOS)
	s.Set("os.arch", runtime.GOARCH)
	if u, err := user.Current(); err == nil {
		s.Set("user.name", u.Username)
		s.Set("user.home", u.HomeDir)
	}
	if wd, err := os.Getwd(); err == nil {
		s.Set("user.dir", wd)
	}
	s.Set("java.io.tmpdir", os.TempDir())
	s.Set("file.separator", string(os.PathSeparator))
	s.Set("path.separator", string(os.PathListSeparator))
	if runtime.GOOS == "windows" {
		s.Set("line.separator", "\r\n")
	} else {
		s.Set("line.separator", "\n")
	}
	if host, err := os.Hostname(); err == nil {
		s.Set("host.name", host)
	}
	s.Set("go.version", runtime.Version())

	for _, o := range overrides {
		s.Merge(o)
	}

	return s
}
