package layout

import (
	"strings"

	"github.com/Mo-Ibra/cv-builder/resume"
)

// Present 是空结束日期的显示文本。
const Present = "Present"

// FormatDate 把月份日期格式化为 "Jan 2020"。空值显示为 Present；无法解析时原样返回，
// ok 为 false。
func FormatDate(s string) (text string, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Present, true
	}
	d, parsed := resume.ParseMonth(s)
	if !parsed {
		return s, false
	}
	return d.String(), true
}

// FormatPeriod renders "start - end" using FormatDate for both ends.
func FormatPeriod(start, end string) string {
	from, _ := FormatDate(start)
	to, _ := FormatDate(end)
	return from + " - " + to
}
