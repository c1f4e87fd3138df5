// Package mkapi guards the exported API of a project's Go packages. The
// exported declarations are dumped into a baseline file when a release is
// cut; later builds check the current API against that baseline and fail on
// removals, i.e. on changes that can break compiled consumers. Additions are
// reported but fine.
package mkapi

import (
	"fmt"
	"go/token"
	"go/types"
	"slices"

	"golang.org/x/tools/go/packages"
)

// Surface maps package import paths to the sorted declaration strings of
// their exported objects.
type Surface map[string][]string

// Dump loads the packages matching patterns (in the module below dir) and
// extracts their exported API surface: package-level objects and the
// exported methods of exported types.
func Dump(dir string, patterns ...string) (Surface, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}
	sur := make(Surface, len(pkgs))
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("loading %s: %v", pkg.PkgPath, pkg.Errors[0])
		}
		sur[pkg.PkgPath] = pkgSurface(pkg.Types)
	}
	return sur, nil
}

func pkgSurface(pkg *types.Package) (syms []string) {
	qual := types.RelativeTo(pkg)
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		if !token.IsExported(name) {
			continue
		}
		obj := scope.Lookup(name)
		syms = append(syms, types.ObjectString(obj, qual))
		tn, ok := obj.(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		mset := types.NewMethodSet(types.NewPointer(tn.Type()))
		for i := 0; i < mset.Len(); i++ {
			m := mset.At(i).Obj()
			if !m.Exported() {
				continue
			}
			syms = append(syms, types.ObjectString(m, qual))
		}
	}
	slices.Sort(syms)
	return syms
}
