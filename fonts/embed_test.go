package fonts

import (
	"bytes"
	"testing"
)

func TestLoadEveryVariant(t *testing.T) {
	for _, fam := range Families() {
		var loaded [][]byte
		for _, v := range []Variant{{}, {Bold: true}, {Italic: true}, {Bold: true, Italic: true}} {
			data, err := Load(fam, v)
			if err != nil {
				t.Fatalf("加载 %s %+v 失败: %v", fam, v, err)
			}
			// OpenType 字体以 "OTTO" 或 0x00010000 开头
			if !bytes.HasPrefix(data, []byte("OTTO")) && !bytes.HasPrefix(data, []byte{0, 1, 0, 0}) {
				t.Fatalf("%s %+v 不是有效的字体数据", fam, v)
			}
			for _, prev := range loaded {
				if bytes.Equal(prev, data) {
					t.Fatalf("%s 的四个变体应各不相同", fam)
				}
			}
			loaded = append(loaded, data)
		}
	}
}

func TestLoadDefaultsToSans(t *testing.T) {
	a, err := Load("", Variant{})
	if err != nil {
		t.Fatalf("空字体族加载失败: %v", err)
	}
	b, _ := Load("SANS", Variant{})
	if !bytes.Equal(a, b) {
		t.Fatalf("空字体族应回退到 sans")
	}
	if _, err := Load("comic", Variant{}); err == nil {
		t.Fatalf("未知字体族应返回错误")
	}
}
