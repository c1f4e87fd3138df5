// Package gomkrel complements Go build scripts for projects where 'go build'
// plus a handful of shell lines is not enough: multi-module trees that have to
// keep their documentation, changelogs, API guarantees and publication targets
// in sync with the code. While a build engine answers "how do I make the
// artefacts", gomkrel answers "how do I describe, gate and ship them".
//
// gomkrel is just a Go library. It does not bring its own build engine and
// does not want to. Every activity – rendering a README from a template,
// normalizing a changelog, checking an API baseline – is declared as a [Task]
// with explicit input and output files, so a host build engine can hang it
// into its own dependency graph and do the staleness checking. For standalone
// use, e.g. in tests or small scripts, the [Runner] executes the tasks of a
// [Project] in dependency order.
//
// The recommended layout for a documented multi-module tree:
//
//	project/
//	├── README.md          aggregated from the modules (see package mkdoc)
//	├── gomkrel.hcl        optional declarative manifest (see package manifest)
//	├── core/
//	│   ├── README.md      rendered from README.tmpl.md
//	│   └── README.tmpl.md
//	└── net/
//	    └── README.tmpl.md
//
// The subpackages carry the individual activities: mkdoc for feature
// registries and README rendering, mkchg for changelogs, mkapi for API
// compatibility baselines, mktgt for multi-target build settings and mkpub
// for publication repository registration.
package gomkrel
