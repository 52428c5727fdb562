package book

import (
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"book-gen-ai-api/internal/domain/entity"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type promptID string

const (
	promptOutlineV1 promptID = "outline_v1"
	promptChapterV1 promptID = "chapter_v1"
)

// promptRegistry 按需解析并缓存嵌入的提示模板
type promptRegistry struct {
	mu    sync.RWMutex
	cache map[promptID]*template.Template
}

var defaultPromptRegistry = &promptRegistry{
	cache: make(map[promptID]*template.Template),
}

func (r *promptRegistry) template(id promptID) (*template.Template, error) {
	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	raw, err := templatesFS.ReadFile(fmt.Sprintf("templates/%s.txt", id))
	if err != nil {
		return nil, fmt.Errorf("read prompt template %s: %w", id, err)
	}
	tpl, err := template.New(string(id)).Parse(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse prompt template %s: %w", id, err)
	}
	r.cache[id] = tpl
	return tpl, nil
}

func (r *promptRegistry) render(id promptID, vars any) (string, error) {
	tpl, err := r.template(id)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := tpl.Execute(&sb, vars); err != nil {
		return "", fmt.Errorf("render prompt template %s: %w", id, err)
	}
	return sb.String(), nil
}

type outlineVars struct {
	Title             string
	Genre             string
	TargetAudience    string
	Theme             string
	Length            int
	AdditionalDetails string
	NumChapters       int
}

type chapterVars struct {
	Number         int
	ChapterTitle   string
	Title          string
	Genre          string
	TargetAudience string
	Theme          string
	Description    string
	ChapterLength  int
	Tone           string
	OutlineContext string
}

// renderOutlinePrompt 渲染书稿大纲提示
func renderOutlinePrompt(spec *entity.BookSpec) (string, error) {
	return defaultPromptRegistry.render(promptOutlineV1, outlineVars{
		Title:             spec.Title,
		Genre:             spec.Genre,
		TargetAudience:    spec.TargetAudience,
		Theme:             spec.Theme,
		Length:            spec.Length,
		AdditionalDetails: spec.AdditionalDetails,
		NumChapters:       spec.ChapterCount(),
	})
}

// renderChapterPrompt 渲染单章提示，outlineContext 为已截断的大纲上下文
func renderChapterPrompt(spec *entity.BookSpec, chapter *entity.ChapterSpec, outlineContext string) (string, error) {
	return defaultPromptRegistry.render(promptChapterV1, chapterVars{
		Number:         chapter.Number,
		ChapterTitle:   chapter.Title,
		Title:          spec.Title,
		Genre:          spec.Genre,
		TargetAudience: spec.TargetAudience,
		Theme:          spec.Theme,
		Description:    chapter.Description,
		ChapterLength:  spec.ChapterTarget(),
		Tone:           spec.ToneOrDefault(),
		OutlineContext: outlineContext,
	})
}
