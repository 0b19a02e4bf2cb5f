// Package binding 负责 ${path} 占位符替换：.cv 文件中的 --var 变量，以及导出文件名模式
// （例如 "${name}_${template}.${ext}"）。
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 若 data 为空或路径不存在，则保留原占位符。
func Interpolate(text string, data any) string {
	if data == nil {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if val, ok := resolvePath(data, path); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// Unresolved 返回 text 中无法从 data 解析的占位符路径，按出现顺序去重。
func Unresolved(text string, data any) []string {
	var out []string
	seen := map[string]bool{}
	for _, groups := range exprPattern.FindAllStringSubmatch(text, -1) {
		path := strings.TrimSpace(groups[1])
		if seen[path] {
			continue
		}
		if _, ok := resolvePath(data, path); ok {
			continue
		}
		seen[path] = true
		out = append(out, path)
	}
	return out
}

// Vars 把 "key=value" 形式的赋值解析为可用于 Interpolate 的数据。
// 带点号的键会展开为嵌套对象，例如 "links.site=x" -> {"links": {"site": "x"}}。
func Vars(assignments []string) (map[string]any, error) {
	out := map[string]any{}
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("变量 %q 需要写成 key=value", a)
		}
		parts := strings.Split(key, ".")
		node := out
		for _, p := range parts[:len(parts)-1] {
			next, ok := node[p].(map[string]any)
			if !ok {
				next = map[string]any{}
				node[p] = next
			}
			node = next
		}
		node[parts[len(parts)-1]] = value
	}
	return out, nil
}

// resolvePath 沿 "a.b[0].c" 形式的路径查找值。
func resolvePath(data any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	current := data
	for _, segment := range strings.Split(path, ".") {
		key, rest, _ := strings.Cut(segment, "[")
		var ok bool
		if key != "" {
			if current, ok = descendMap(current, key); !ok {
				return nil, false
			}
		}
		for rest != "" {
			idx, tail, found := strings.Cut(rest, "]")
			if !found {
				return nil, false
			}
			n, err := strconv.Atoi(idx)
			if err != nil {
				return nil, false
			}
			if current, ok = descendSlice(current, n); !ok {
				return nil, false
			}
			rest = strings.TrimPrefix(tail, "[")
		}
	}
	return current, true
}

func descendMap(current any, key string) (any, bool) {
	switch m := current.(type) {
	case map[string]any:
		v, ok := m[key]
		return v, ok
	case map[string]string:
		v, ok := m[key]
		return v, ok
	}
	return nil, false
}

func descendSlice(current any, idx int) (any, bool) {
	list, ok := current.([]any)
	if !ok || idx < 0 || idx >= len(list) {
		return nil, false
	}
	return list[idx], true
}
