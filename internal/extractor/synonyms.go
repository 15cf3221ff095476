package extractor

// DefaultSynonyms maps canonical technology names to their lowercase surface
// forms. Single alphanumeric forms are matched against the word-segmented
// token set; symbolic and multi-word forms are matched as whole phrases.
func DefaultSynonyms() map[string][]string {
	return map[string][]string{
		"C++":           {"c++", "cpp", "c plus plus"},
		"C#":            {"c#", "csharp"},
		"Go":            {"go", "golang"},
		"Rust":          {"rust"},
		"Python":        {"python"},
		"Java":          {"java"},
		"Lua":           {"lua"},
		"Unreal Engine": {"unreal", "unreal engine", "ue4", "ue5", "ue 4", "ue 5"},
		"Unity":         {"unity"},
		"DirectX":       {"directx"},
		"DirectX 11":    {"d3d11", "d3d 11", "directx 11"},
		"DirectX 12":    {"d3d12", "d3d 12", "directx 12"},
		"Vulkan":        {"vulkan"},
		"OpenGL":        {"opengl"},
		"Metal":         {"metal"},
		"CUDA":          {"cuda"},
		"OpenCV":        {"opencv"},
		"Qt":            {"qt"},
		"Boost":         {"boost"},
		"STL":           {"stl"},
		"CMake":         {"cmake"},
		"Git":           {"git"},
		"Linux":         {"linux"},
		"Docker":        {"docker"},
		"Kubernetes":    {"kubernetes", "k8s"},
		"PostgreSQL":    {"postgres", "postgresql"},
		"Redis":         {"redis"},
		"gRPC":          {"grpc"},
		"FFmpeg":        {"ffmpeg"},
		"LLVM":          {"llvm"},
	}
}
