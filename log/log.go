package log

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/aldzban/ambient/semantic"
)

func loadComponentIntoArrayLogger(
	component *semantic.Component,
	arrayLogger *zerolog.Array,
) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Str("component_path", component.Path())
	dictLogger = dictLogger.Str("component_type", component.Type.Path())
	return arrayLogger.Dict(dictLogger)
}

func loadComponentsToEvent(zeroLoggerEvent *zerolog.Event, pkg *semantic.Package) *zerolog.Event {
	components := make([]*semantic.Component, 0, len(pkg.Components))
	for _, component := range pkg.Components {
		components = append(components, component)
	}
	sort.Slice(components, func(i, j int) bool {
		return components[i].Path() < components[j].Path()
	})
	zeroLoggerEvent.Int("total_components", len(components))
	arrayLogger := zerolog.Arr()
	for _, component := range components {
		arrayLogger = loadComponentIntoArrayLogger(component, arrayLogger)
	}
	return zeroLoggerEvent.Array("components", arrayLogger)
}

func loadMessagesToEvent(zeroLoggerEvent *zerolog.Event, pkg *semantic.Package) *zerolog.Event {
	paths := make([]string, 0, len(pkg.Messages))
	for _, message := range pkg.Messages {
		paths = append(paths, message.Path())
	}
	sort.Strings(paths)
	zeroLoggerEvent.Int("total_messages", len(paths))
	arrayLogger := zerolog.Arr()
	for _, path := range paths {
		arrayLogger = arrayLogger.Str(path)
	}
	return zeroLoggerEvent.Array("messages", arrayLogger)
}

func loadConceptsToEvent(zeroLoggerEvent *zerolog.Event, pkg *semantic.Package) *zerolog.Event {
	concepts := make([]*semantic.Concept, 0, len(pkg.Concepts))
	for _, concept := range pkg.Concepts {
		concepts = append(concepts, concept)
	}
	sort.Slice(concepts, func(i, j int) bool {
		return concepts[i].Path() < concepts[j].Path()
	})
	zeroLoggerEvent.Int("total_concepts", len(concepts))
	arrayLogger := zerolog.Arr()
	for _, concept := range concepts {
		dictLogger := zerolog.Dict()
		dictLogger = dictLogger.Str("concept_path", concept.Path())
		dictLogger = dictLogger.Int("required_components", len(concept.FlattenedRequired))
		dictLogger = dictLogger.Int("optional_components", len(concept.FlattenedOptional))
		arrayLogger = arrayLogger.Dict(dictLogger)
	}
	return zeroLoggerEvent.Array("concepts", arrayLogger)
}

// Components logs every component declared by the package.
func Components(logger *zerolog.Logger, pkg *semantic.Package, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadComponentsToEvent(zeroLoggerEvent, pkg)
	zeroLoggerEvent.Send()
}

// Messages logs every message declared by the package.
func Messages(logger *zerolog.Logger, pkg *semantic.Package, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadMessagesToEvent(zeroLoggerEvent, pkg)
	zeroLoggerEvent.Send()
}

// Package logs everything the package declares (components, concepts and
// messages).
func Package(logger *zerolog.Logger, pkg *semantic.Package, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = zeroLoggerEvent.Str("package_id", string(pkg.ID))
	zeroLoggerEvent = loadComponentsToEvent(zeroLoggerEvent, pkg)
	zeroLoggerEvent = loadConceptsToEvent(zeroLoggerEvent, pkg)
	zeroLoggerEvent = loadMessagesToEvent(zeroLoggerEvent, pkg)
	zeroLoggerEvent.Send()
}

// CreatePackageLogger creates a sub logger with the entry
// {"package_id": packageID}.
func CreatePackageLogger(logger *zerolog.Logger, packageID string) *zerolog.Logger {
	newLogger := logger.With().Str("package_id", packageID).Logger()
	return &newLogger
}
