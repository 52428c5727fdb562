// Package entity 提供领域实体定义
package entity

import "strings"

// 书稿参数默认值
const (
	DefaultNumChapters   = 10
	DefaultChapterLength = 2000
	DefaultTone          = "Engaging and appropriate for the genre"
)

// BookSpec 书稿生成参数，随请求传入，不做语义校验
type BookSpec struct {
	Title             string `json:"title"`
	Genre             string `json:"genre"`
	TargetAudience    string `json:"target_audience"`
	Theme             string `json:"theme"`
	Length            int    `json:"length"`
	NumChapters       *int   `json:"num_chapters,omitempty"`
	AdditionalDetails string `json:"additional_details,omitempty"`
	ChapterLength     int    `json:"chapter_length,omitempty"`
	Tone              string `json:"tone,omitempty"`
}

// ChapterCount 返回章节数，未指定时取默认值
// 显式传入 0 视为 0，不回退默认值
func (s *BookSpec) ChapterCount() int {
	if s.NumChapters == nil {
		return DefaultNumChapters
	}
	return *s.NumChapters
}

// ChapterTarget 返回单章目标字数，未指定时取默认值
func (s *BookSpec) ChapterTarget() int {
	if s.ChapterLength <= 0 {
		return DefaultChapterLength
	}
	return s.ChapterLength
}

// ToneOrDefault 返回写作语气，未指定时取默认值
func (s *BookSpec) ToneOrDefault() string {
	if strings.TrimSpace(s.Tone) == "" {
		return DefaultTone
	}
	return s.Tone
}

// ChapterSpec 单章生成参数
type ChapterSpec struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Chapter 生成完成的章节
type Chapter struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// BookDraft 一次完整书稿生成的结果，不做持久化
type BookDraft struct {
	Outline  string    `json:"outline"`
	Chapters []Chapter `json:"chapters"`
}
