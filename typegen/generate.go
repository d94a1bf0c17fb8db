package typegen

import (
	"strings"
	"time"

	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/logger"
	"github.com/teranos/shapegen/schema"
)

// DefaultFileBase is the output file name without extension.
const DefaultFileBase = "shapes"

// Options tunes a generation run.
type Options struct {
	// AllowCycles keeps going when shapes form a cycle (see Orderer)
	AllowCycles bool

	// FileBase is the output file name without extension (default "shapes")
	FileBase string

	// Progress receives stage events; nil discards them
	Progress ProgressEmitter
}

// Generate runs the whole pipeline over model for one backend and returns
// the complete output text. Nothing is written anywhere; callers hand the
// result to WriteFile once it succeeded.
//
// Every run builds its own graph, order and filter from model, so the same
// inputs always produce byte-identical output.
func Generate(model *schema.Model, gen Generator, opts Options) (*Result, error) {
	progress := opts.Progress
	if progress == nil {
		progress = NopEmitter{}
	}
	fileBase := opts.FileBase
	if fileBase == "" {
		fileBase = DefaultFileBase
	}

	log := logger.ComponentLogger("typegen").With(logger.FieldLang, gen.Language())
	start := time.Now()

	fail := func(stage string, err error) (*Result, error) {
		progress.EmitError(stage, err)
		log.Debugw("Generation failed", logger.FieldStage, stage, logger.FieldError, err)
		return nil, err
	}

	progress.EmitStage(StageValidate, "checking shape references")
	if err := model.Validate(); err != nil {
		return fail(StageValidate, err)
	}

	progress.EmitStage(StageGraph, "building dependency graph")
	graph, err := BuildGraph(model)
	if err != nil {
		return fail(StageGraph, err)
	}
	progress.EmitProgress(graph.Len(), map[string]interface{}{"type": "shapes"})

	progress.EmitStage(StageOrder, "ordering shapes")
	order, err := Orderer{AllowCycles: opts.AllowCycles, Logger: log}.Order(graph)
	if err != nil {
		return fail(StageOrder, err)
	}

	filter := NewShapeFilter(model.Operations())

	progress.EmitStage(StageEmit, "emitting classes")
	var sb strings.Builder

	header, err := gen.Header(model)
	if err != nil {
		return fail(StageEmit, errors.NewRenderingError("<header>", "", err))
	}
	sb.WriteString(header)

	var classes []string
	for _, name := range order {
		if !filter.IsEligible(name) {
			continue
		}
		shape, ok := model.Shape(name)
		if !ok || shape.Type != schema.KindStructure {
			continue
		}

		class, err := emitShape(model, gen, shape)
		if err != nil {
			return fail(StageEmit, err)
		}
		sb.WriteString(class)
		classes = append(classes, name)
		log.Debugw("Emitted class", logger.FieldShape, name)
	}
	progress.EmitProgress(len(classes), map[string]interface{}{"type": "classes"})

	result := &Result{
		Language: gen.Language(),
		FileName: FileName(fileBase, gen),
		Output:   sb.String(),
		Order:    order,
		Classes:  classes,
		Excluded: filter.Excluded(),
	}

	log.Infow("Generated shapes",
		logger.FieldCount, len(classes),
		logger.FieldTotalCount, model.Len(),
		logger.FieldDurationMS, time.Since(start).Milliseconds())

	return result, nil
}

func emitShape(model *schema.Model, gen Generator, shape *schema.Shape) (string, error) {
	members, err := gen.RenderMembers(model, shape)
	if err != nil {
		if errors.IsRenderingError(err) {
			return "", err
		}
		return "", errors.NewRenderingError(shape.Name, "", err)
	}

	doc := gen.RenderDocumentation(shape)

	class, err := gen.EmitClass(shape, members, doc)
	if err != nil {
		return "", errors.NewRenderingError(shape.Name, "", err)
	}
	return class, nil
}
