package resume

import (
	"reflect"
	"testing"
)

func TestNormalizeTrimsAndAssignsIDs(t *testing.T) {
	in := Record{
		Personal: Personal{FullName: "  Jane Doe ", Email: " jane@example.com"},
		Experience: []ExperienceEntry{
			{Company: " Acme ", StartDate: " 2020-01 "},
			{ID: "keep", Company: "Beta"},
		},
		Education: []EducationEntry{{Institution: "MIT  "}},
		Skills:    []string{" Go", "", "Go", "SQL "},
	}
	out := Normalize(in)

	if out.Personal.FullName != "Jane Doe" || out.Personal.Email != "jane@example.com" {
		t.Fatalf("个人信息未去除空白: %+v", out.Personal)
	}
	if out.Experience[0].Company != "Acme" || out.Experience[0].StartDate != "2020-01" {
		t.Fatalf("工作经历未去除空白: %+v", out.Experience[0])
	}
	if out.Experience[0].ID == "" || out.Education[0].ID == "" {
		t.Fatalf("缺失的 id 应被补齐")
	}
	if out.Experience[1].ID != "keep" {
		t.Fatalf("已有 id 不应改变: %q", out.Experience[1].ID)
	}
	if !reflect.DeepEqual(out.Skills, []string{"Go", "SQL"}) {
		t.Fatalf("技能去重结果错误: %v", out.Skills)
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	in := Record{
		Personal:   Personal{FullName: " A ", Photo: Photo{1, 2, 3}},
		Experience: []ExperienceEntry{{Company: " X "}},
		Skills:     []string{" Go "},
	}
	out := Normalize(in)
	out.Personal.Photo[0] = 9
	out.Experience[0].Company = "changed"
	out.Skills[0] = "changed"

	if in.Personal.FullName != " A " || in.Experience[0].Company != " X " || in.Experience[0].ID != "" {
		t.Fatalf("输入记录被修改: %+v", in)
	}
	if in.Personal.Photo[0] != 1 || in.Skills[0] != " Go " {
		t.Fatalf("输入切片与输出共享底层数组")
	}
}

func TestUniqueSkills(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{nil, nil},
		{[]string{"", "  "}, []string{}},
		{[]string{"b", "a", "b"}, []string{"b", "a"}},
		{[]string{"Go", "go"}, []string{"Go", "go"}},
	}
	for _, tc := range cases {
		got := UniqueSkills(tc.in)
		if len(got) != len(tc.want) {
			t.Fatalf("UniqueSkills(%q) = %q, want %q", tc.in, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("UniqueSkills(%q) = %q, want %q", tc.in, got, tc.want)
			}
		}
	}
}

func TestCleanLeavesMissingIDsEmpty(t *testing.T) {
	in := Record{
		Experience: []ExperienceEntry{{ID: " e1 ", Company: " Acme "}, {Company: "Beta"}},
		Education:  []EducationEntry{{Institution: "MIT"}},
	}
	out := Clean(in)
	if out.Experience[0].ID != "e1" || out.Experience[0].Company != "Acme" {
		t.Fatalf("Clean 应去除空白: %+v", out.Experience[0])
	}
	if out.Experience[1].ID != "" || out.Education[0].ID != "" {
		t.Fatalf("Clean 不应生成 id: %+v %+v", out.Experience[1], out.Education[0])
	}
}
