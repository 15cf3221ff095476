// Package classify assigns each vacancy record one of the fixed engineering
// field types, either heuristically or through an LLM.
package classify

import "strings"

// The fixed field type vocabulary.
const (
	FieldGameDev   = "Game Development"
	FieldRendering = "Rendering & Graphics"
	FieldEmbedded  = "Embedded & Firmware"
	FieldBackend   = "Backend & High-Load Services"
	FieldBrowsers  = "Browsers & Web Engines"
	FieldFrontend  = "Frontend"
	FieldOS        = "Operating Systems & Toolchains"
	FieldRobotics  = "Robotics & Computer Vision & AI"
	FieldMedia     = "Video & Media"
	FieldDesktop   = "Desktop Applications & CAD"
	FieldHPC       = "Scientific Computing & HPC"
	FieldSecurity  = "Security & Reverse Engineering"
	FieldUnknown   = "Unknown"
)

// FieldTypes lists every assignable field type in a stable order.
func FieldTypes() []string {
	return []string{
		FieldGameDev,
		FieldRendering,
		FieldEmbedded,
		FieldBackend,
		FieldBrowsers,
		FieldFrontend,
		FieldOS,
		FieldRobotics,
		FieldMedia,
		FieldDesktop,
		FieldHPC,
		FieldSecurity,
	}
}

// CanonicalField maps a free-form answer (e.g. from an LLM) onto the fixed
// vocabulary, falling back to Unknown.
func CanonicalField(answer string) string {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "" {
		return FieldUnknown
	}

	for _, field := range FieldTypes() {
		if strings.ToLower(field) == answer {
			return field
		}
	}

	// Tolerate partial answers like "backend" or "game development".
	for _, field := range FieldTypes() {
		lower := strings.ToLower(field)
		if strings.Contains(lower, answer) || strings.Contains(answer, strings.Split(lower, " ")[0]) {
			return field
		}
	}

	return FieldUnknown
}
