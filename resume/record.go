// Package resume 定义简历数据记录，以及从 JSON 输入加载与规范化的工具。
//
// 布局引擎只读取 Record，不会修改调用方持有的数据。
package resume

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Record 是一次渲染请求的完整输入。
type Record struct {
	Personal   Personal          `json:"personalInfo"`
	Experience []ExperienceEntry `json:"experience" validate:"dive"`
	Education  []EducationEntry  `json:"education"`
	Skills     []string          `json:"skills"`
}

// Personal 保存姓名、联系方式与个人简介。
type Personal struct {
	FullName string `json:"fullName"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,max=40"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
	Photo    Photo  `json:"profilePhoto,omitempty"`
}

// ExperienceEntry 是一段工作经历。StartDate/EndDate 为月份精度的日期字符串，
// EndDate 为空表示至今。
type ExperienceEntry struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate" validate:"omitempty,monthdate"`
	EndDate     string `json:"endDate" validate:"omitempty,monthdate"`
	Description string `json:"description"`
}

// EducationEntry 是一段教育经历。GraduationYear 为自由文本，不做校验。
type EducationEntry struct {
	ID             string `json:"id"`
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationYear string `json:"graduationYear"`
}

// HasPhoto reports whether the record carries any photo bytes.
func (r *Record) HasPhoto() bool {
	return r != nil && len(r.Personal.Photo) > 0
}

// Photo 保存头像原始字节（JPEG/PNG/GIF/WebP），不做重新编码。
//
// JSON 中既可以是编辑器产出的 data URL（data:image/jpeg;base64,...），也可以是纯 base64。
type Photo []byte

// UnmarshalJSON accepts a data URL, plain base64, or null. Text that is not
// valid base64 is kept as-is so the photo fails later as an undecodable image.
func (p *Photo) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("profilePhoto 必须是字符串: %w", err)
	}
	decoded, err := DecodePhoto(s)
	if err != nil {
		// 保留原文，由排版阶段报告 ImageDecodeFailure 并跳过头像位。
		*p = Photo(s)
		return nil
	}
	*p = decoded
	return nil
}

// MarshalJSON encodes the photo as plain base64.
func (p Photo) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte(`""`), nil
	}
	return json.Marshal(base64.StdEncoding.EncodeToString(p))
}

// DecodePhoto 解析 data URL 或纯 base64 文本。空字符串返回 nil。
func DecodePhoto(s string) (Photo, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "data:") {
		comma := strings.IndexByte(s, ',')
		if comma < 0 {
			return nil, fmt.Errorf("profilePhoto data URL 缺少数据段")
		}
		if !strings.HasSuffix(s[:comma], ";base64") {
			return nil, fmt.Errorf("profilePhoto data URL 仅支持 base64 编码")
		}
		s = s[comma+1:]
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("profilePhoto base64 解码失败: %w", err)
	}
	return data, nil
}
