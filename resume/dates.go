package resume

import (
	"strconv"
	"strings"
	"time"
)

// MonthDate 是月份精度的日期。Month 为 0 表示仅有年份。
type MonthDate struct {
	Year  int
	Month time.Month
}

// monthLayouts 覆盖编辑器的 <input type="month"> 输出以及常见的手写格式。
var monthLayouts = []string{
	"2006-01",
	"2006-01-02",
	time.RFC3339,
	"2006/01",
	"01/2006",
	"1/2006",
	"Jan 2006",
	"January 2006",
	"Jan. 2006",
}

// ParseMonth parses s into a MonthDate. Blank or unrecognised input reports ok=false.
func ParseMonth(s string) (MonthDate, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return MonthDate{}, false
	}
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return MonthDate{Year: t.Year(), Month: t.Month()}, true
		}
	}
	if len(s) == 4 {
		if y, err := strconv.Atoi(s); err == nil && y > 0 {
			return MonthDate{Year: y}, true
		}
	}
	return MonthDate{}, false
}

// String renders "Jan 2020", or just the year when the month is unknown.
func (d MonthDate) String() string {
	if d.Month == 0 {
		return strconv.Itoa(d.Year)
	}
	return d.Month.String()[:3] + " " + strconv.Itoa(d.Year)
}
