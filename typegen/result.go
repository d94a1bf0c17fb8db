package typegen

// Result holds the output of one generation run for one backend.
// This is language-agnostic - each Generator decides what Output looks like.
type Result struct {
	// Language is the backend that produced the output, e.g. "python"
	Language string

	// FileName is the file the output belongs in, e.g. "shapes.py"
	FileName string

	// Output is the complete generated text
	Output string

	// Order is the full topological order of shape names, including shapes
	// that were not emitted
	Order []string

	// Classes lists the emitted shapes in emission order
	Classes []string

	// Excluded lists operation input/output shapes, sorted
	Excluded []string
}

// ClassCount returns the number of emitted classes
func (r *Result) ClassCount() int {
	return len(r.Classes)
}
