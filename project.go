package gomkrel

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// A Project is the root of a tree of modules ([Module]) and owns the named
// tasks ([Task]) declared for that tree. Module declaration order is
// preserved; every traversal visits modules in the order they were added.
type Project struct {
	// Dir is the root directory of the project tree. All task input and
	// output paths are interpreted relative to Dir.
	Dir string

	modules  []*Module
	taskList []Task
	tasks    map[string]Task
}

// NewProject creates a project rooted at dir. An empty dir means the current
// working directory.
func NewProject(dir string) *Project {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	return &Project{
		Dir:   dir,
		tasks: make(map[string]Task),
	}
}

func (prj *Project) String() string {
	tmp := prj.Dir
	if tmp == "" || tmp == "." {
		tmp, _ = filepath.Abs(tmp)
	}
	return filepath.Base(tmp)
}

// Module adds a top-level module with the given name to prj and returns it.
// If a module with that name already exists it is returned unchanged. An
// empty dir defaults to the module name.
func (prj *Project) Module(name, dir string) *Module {
	for _, m := range prj.modules {
		if m.name == name {
			return m
		}
	}
	if dir == "" {
		dir = name
	}
	m := &Module{name: name, dir: dir, prj: prj}
	prj.modules = append(prj.modules, m)
	return m
}

// Modules returns the top-level modules of prj in declaration order.
func (prj *Project) Modules() []*Module { return prj.modules }

// Walk visits every module of the tree depth-first in declaration order. A
// non-nil error from visit stops the walk and is returned.
func (prj *Project) Walk(visit func(*Module) error) error {
	for _, m := range prj.modules {
		if err := m.walk(visit); err != nil {
			return err
		}
	}
	return nil
}

// FindModule resolves a slash-separated module path like "core/codec". It
// returns nil if no such module exists.
func (prj *Project) FindModule(modPath string) *Module {
	names := strings.Split(modPath, "/")
	mods := prj.modules
	var found *Module
	for _, name := range names {
		found = nil
		for _, m := range mods {
			if m.name == name {
				found = m
				break
			}
		}
		if found == nil {
			return nil
		}
		mods = found.subs
	}
	return found
}

// AbsPath resolves a project-relative path against the project root.
func (prj *Project) AbsPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(prj.Dir, filepath.FromSlash(p))
}

// A Module is one buildable and documentable unit within a project tree. It
// carries the descriptive data the documentation and publication activities
// work with; the artefact-producing side stays with the host build engine.
type Module struct {
	// Description is an optional human-readable summary of the module.
	Description string

	// Maturity classifies the stability of the module. The zero value is
	// [Experimental].
	Maturity Maturity

	name   string
	dir    string
	prj    *Project
	parent *Module
	subs   []*Module
}

func (m *Module) Name() string { return m.name }

func (m *Module) Project() *Project { return m.prj }

func (m *Module) Parent() *Module { return m.parent }

// Path returns the slash-separated module path within the project tree,
// e.g. "core/codec".
func (m *Module) Path() string {
	if m.parent == nil {
		return m.name
	}
	return m.parent.Path() + "/" + m.name
}

// Dir returns the module directory relative to the project root, using
// forward slashes.
func (m *Module) Dir() string {
	if m.parent == nil {
		return path.Clean(m.dir)
	}
	return path.Join(m.parent.Dir(), m.dir)
}

// Module adds a submodule, with the same semantics as [Project.Module].
func (m *Module) Module(name, dir string) *Module {
	for _, s := range m.subs {
		if s.name == name {
			return s
		}
	}
	if dir == "" {
		dir = name
	}
	s := &Module{name: name, dir: dir, prj: m.prj, parent: m}
	m.subs = append(m.subs, s)
	return s
}

// Modules returns the submodules of m in declaration order.
func (m *Module) Modules() []*Module { return m.subs }

func (m *Module) String() string {
	return fmt.Sprintf("[%s]%s", m.Path(), m.Maturity)
}

func (m *Module) walk(visit func(*Module) error) error {
	if err := visit(m); err != nil {
		return err
	}
	for _, s := range m.subs {
		if err := s.walk(visit); err != nil {
			return err
		}
	}
	return nil
}
