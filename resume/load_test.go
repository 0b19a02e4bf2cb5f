package resume

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestLoadJSONEditorShape(t *testing.T) {
	photo := base64.StdEncoding.EncodeToString([]byte("\x89PNG fake"))
	input := `{
  "personalInfo": {
    "fullName": "Jane Doe",
    "email": "jane@example.com",
    "profilePhoto": "data:image/png;base64,` + photo + `"
  },
  "experience": [
    {"id": "e1", "company": "Acme", "position": "Engineer", "startDate": "2020-01", "endDate": "", "description": "Built things"}
  ],
  "education": [],
  "skills": ["Go", "SQL"]
}`
	rec, err := LoadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	if rec.Personal.FullName != "Jane Doe" || rec.Personal.Email != "jane@example.com" {
		t.Fatalf("个人信息解析错误: %+v", rec.Personal)
	}
	if string(rec.Personal.Photo) != "\x89PNG fake" {
		t.Fatalf("头像 data URL 未解码: %q", rec.Personal.Photo)
	}
	if len(rec.Experience) != 1 || rec.Experience[0].Company != "Acme" {
		t.Fatalf("工作经历解析错误: %+v", rec.Experience)
	}
	if len(rec.Skills) != 2 {
		t.Fatalf("技能数量错误: %v", rec.Skills)
	}
}

func TestLoadJSONNullsAndMissingFields(t *testing.T) {
	rec, err := LoadJSON(strings.NewReader(`{"personalInfo": {"profilePhoto": null}, "experience": null, "skills": null}`))
	if err != nil {
		t.Fatalf("null 字段应被接受: %v", err)
	}
	if rec.HasPhoto() || len(rec.Experience) != 0 || len(rec.Skills) != 0 {
		t.Fatalf("null 字段应解析为空值: %+v", rec)
	}
}

func TestLoadJSONSchemaViolation(t *testing.T) {
	_, err := LoadJSON(strings.NewReader(`{"skills": "Go, SQL"}`))
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("期望 SchemaError，得到 %v", err)
	}
	if len(se.Errors) == 0 || !strings.Contains(se.Errors[0].Field, "skills") {
		t.Fatalf("错误应指向 skills 字段: %+v", se.Errors)
	}
}

func TestLoadJSONSyntaxError(t *testing.T) {
	if _, err := LoadJSON(strings.NewReader(`{"personalInfo": `)); err == nil {
		t.Fatalf("截断的 JSON 应返回错误")
	}
}

func TestPhotoInvalidBase64KeptVerbatim(t *testing.T) {
	rec, err := LoadJSON(strings.NewReader(`{"personalInfo": {"profilePhoto": "data:image/png;base64,@@not-base64@@"}}`))
	if err != nil {
		t.Fatalf("无效头像不应导致加载失败: %v", err)
	}
	if !rec.HasPhoto() {
		t.Fatalf("无效头像应保留原文以便排版阶段报告")
	}
}

func TestDecodePhoto(t *testing.T) {
	raw := []byte{0xff, 0xd8, 0xff, 0x00}
	enc := base64.StdEncoding.EncodeToString(raw)
	for _, in := range []string{enc, "data:image/jpeg;base64," + enc, "  " + enc + "\n"} {
		got, err := DecodePhoto(in)
		if err != nil {
			t.Fatalf("DecodePhoto(%q) 失败: %v", in, err)
		}
		if string(got) != string(raw) {
			t.Fatalf("DecodePhoto(%q) = %v", in, got)
		}
	}
	if got, err := DecodePhoto(""); err != nil || got != nil {
		t.Fatalf("空字符串应返回 nil, nil")
	}
	if _, err := DecodePhoto("data:image/svg+xml,<svg/>"); err == nil {
		t.Fatalf("非 base64 data URL 应报错")
	}
}

func TestPhotoMarshalJSON(t *testing.T) {
	data, err := Photo("abc").MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"YWJj"` {
		t.Fatalf("头像编码错误: %s", data)
	}
	empty, _ := Photo(nil).MarshalJSON()
	if string(empty) != `""` {
		t.Fatalf("空头像应编码为空字符串: %s", empty)
	}
}
