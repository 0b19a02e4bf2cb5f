package resume

import (
	"strings"
	"testing"
)

func TestCheckCleanRecord(t *testing.T) {
	rec := Record{
		Personal:   Personal{FullName: "Jane", Email: "jane@example.com"},
		Experience: []ExperienceEntry{{StartDate: "2020-01", EndDate: "2022-03"}},
	}
	if w := Check(rec); len(w) != 0 {
		t.Fatalf("不应有警告: %v", w)
	}
}

func TestCheckWarnings(t *testing.T) {
	rec := Record{
		Personal: Personal{Email: "not-an-email"},
		Experience: []ExperienceEntry{
			{StartDate: "sometime", EndDate: "2022-03"},
			{EndDate: "2021-01"},
		},
	}
	warnings := Check(rec)
	fields := map[string]string{}
	for _, w := range warnings {
		fields[w.Field] = w.Message
	}
	if msg, ok := fields["Personal.Email"]; !ok || !strings.Contains(msg, "not-an-email") {
		t.Fatalf("缺少邮箱警告: %v", warnings)
	}
	if _, ok := fields["Experience[0].StartDate"]; !ok {
		t.Fatalf("缺少日期格式警告: %v", warnings)
	}
	if msg := fields["Experience[1].StartDate"]; !strings.Contains(msg, "without a start date") {
		t.Fatalf("缺少起始日期警告: %v", warnings)
	}
	if len(warnings) != 3 {
		t.Fatalf("警告数量错误: %v", warnings)
	}
}
