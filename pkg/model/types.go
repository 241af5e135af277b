package model

import (
	"github.com/goliatone/go-buildergen/internal/annotation"
	internalmodel "github.com/goliatone/go-buildergen/internal/model"
	"github.com/goliatone/go-buildergen/internal/shape"
)

type (
	StorageKind  = internalmodel.StorageKind
	DefaultKind  = internalmodel.DefaultKind
	AssemblyKind = internalmodel.AssemblyKind
	FieldPlan    = internalmodel.FieldPlan
	BuilderModel = internalmodel.BuilderModel
	File         = internalmodel.File
	Annotation   = annotation.Annotation
	ShapeKind    = shape.Kind
)

const (
	StoragePresence = internalmodel.StoragePresence
	StorageSequence = internalmodel.StorageSequence
	DefaultUnset    = internalmodel.DefaultUnset
	DefaultEmpty    = internalmodel.DefaultEmpty
	AssembleUnwrap  = internalmodel.AssembleUnwrap
	AssembleCopy    = internalmodel.AssembleCopy
	AssembleClone   = internalmodel.AssembleClone

	ShapeRequired = shape.Required
	ShapeOptional = shape.Optional
	ShapeRepeated = shape.Repeated

	TagEach = annotation.TagEach
)
