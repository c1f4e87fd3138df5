// Package mkdoc generates README documents for the modules of a project
// tree. Each module advertises its capabilities in a [Registry] of named
// features; a [Readme] loads a template, substitutes $name and ${name}
// placeholders with registered properties and the serialized feature list,
// and [Aggregate] folds the per-module feature blocks into one root-level
// document. Rendering is a pure function of template text, properties and
// features: no output is cached and nothing is written except by the task
// wrappers, which declare their files to the host build engine.
package mkdoc
