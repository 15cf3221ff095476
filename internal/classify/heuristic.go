package classify

import (
	"context"
	"strings"

	"vacradar/internal/models"
)

// fieldRule associates a field type with the keywords that signal it.
// Rules are checked in order; the first hit wins.
type fieldRule struct {
	field    string
	keywords []string
}

var fieldRules = []fieldRule{
	{FieldGameDev, []string{"unreal", "ue4", "ue5", "unity", "gamedev", "game develop", "игр", "геймдев"}},
	{FieldRendering, []string{"vulkan", "opengl", "directx", "d3d", "render", "shader", "шейдер", "графическ"}},
	{FieldEmbedded, []string{"embedded", "firmware", "микроконтроллер", "stm32", "rtos", "прошивк", "встраиваем"}},
	{FieldBrowsers, []string{"chromium", "blink", "webkit", "v8", "браузер", "browser engine"}},
	{FieldRobotics, []string{"robot", "opencv", "computer vision", "машинн", "нейронн", "autonomous", "ros", "робот", "компьютерного зрения"}},
	{FieldMedia, []string{"ffmpeg", "codec", "кодек", "video process", "видеопоток", "streaming", "транскод"}},
	{FieldSecurity, []string{"reverse engineering", "реверс", "malware", "уязвимост", "vulnerability", "антивирус", "exploit"}},
	{FieldHPC, []string{"cuda", "hpc", "mpi", "high performance computing", "научн", "simulation", "численн"}},
	{FieldOS, []string{"llvm", "compiler", "компилятор", "kernel", "ядро linux", "driver", "драйвер", "toolchain"}},
	{FieldDesktop, []string{"qt", "desktop", "cad", "сапр", "wpf", "десктоп"}},
	{FieldFrontend, []string{"frontend", "react", "vue", "angular", "фронтенд", "верстк"}},
	{FieldBackend, []string{"backend", "highload", "high-load", "микросервис", "microservice", "бэкенд", "grpc", "kafka", "высоконагруж"}},
}

// Heuristic categorizes records by keyword lookup over the normalized
// description, title and detected technologies. It never fails, so it also
// serves as the fallback engine for the LLM path.
type Heuristic struct{}

// NewHeuristic creates a heuristic categorizer.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Categorize returns the first field type whose keywords appear in the
// record, or Unknown.
func (h *Heuristic) Categorize(_ context.Context, rec *models.VacancyRecord) (string, error) {
	text := strings.ToLower(rec.Name) + " " + rec.Description + " " + strings.ToLower(strings.Join(rec.Technologies, " "))

	for _, rule := range fieldRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.field, nil
			}
		}
	}

	return FieldUnknown, nil
}
