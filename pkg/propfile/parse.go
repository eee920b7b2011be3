package propfile

import (
	"github.com/magiconair/properties"

	"github.com/lwmacct/251207-go-pkg-varsub/pkg/varsub"
)

// Parse 解析 properties 格式的内容，变量顺序与文件中首次出现的顺序一致。
func Parse(data []byte) (*varsub.Store, error) {
	l := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := l.LoadBytes(data)
	if err != nil {
		return nil, err
	}

	s := &varsub.Store{}
	for _, key := range p.Keys() {
		value, _ := p.Get(key)
		s.Set(key, value)
	}

	return s, nil
}

// ParseString 是 [Parse] 的字符串版本。
func ParseString(text string) (*varsub.Store, error) {
	return Parse([]byte(text))
}
