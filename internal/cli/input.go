package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Mo-Ibra/cv-builder/binding"
	"github.com/Mo-Ibra/cv-builder/dsl"
	"github.com/Mo-Ibra/cv-builder/resume"
)

// stdinName selects standard input, which is always read as JSON.
const stdinName = "-"

// input is a loaded resume plus the template the file asks for, if any.
type input struct {
	Record   resume.Record
	Template string
}

// loadInput 按扩展名选择解析方式：.json 为编辑器导出的 JSON，.cv 为文本格式。
func loadInput(path string, stdin io.Reader, vars map[string]any) (*input, error) {
	if path == stdinName {
		rec, err := resume.LoadJSON(stdin)
		if err != nil {
			return nil, err
		}
		return &input{Record: rec}, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("无法打开简历文件 %s: %w", path, err)
		}
		defer f.Close()
		rec, err := resume.LoadJSON(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &input{Record: rec}, nil
	case ".cv":
		doc, err := dsl.ReadFile(path, vars)
		if err != nil {
			return nil, err
		}
		return &input{Record: doc.Record, Template: doc.Template}, nil
	default:
		return nil, fmt.Errorf("unsupported input %s (expected .json or .cv)", path)
	}
}

// templateVars merges config vars with --var assignments; flags win.
func (c *CLI) templateVars(assignments []string) (map[string]any, error) {
	keys := make([]string, 0, len(c.Config.Vars))
	for k := range c.Config.Vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	all := make([]string, 0, len(keys)+len(assignments))
	for _, k := range keys {
		all = append(all, k+"="+c.Config.Vars[k])
	}
	all = append(all, assignments...)
	return binding.Vars(all)
}
