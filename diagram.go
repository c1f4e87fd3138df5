package gomkrel

import (
	"fmt"
	"io"
	"strings"
)

// Diagrammer writes a [Project]'s task dependency graph in graphviz dot
// format. Edges point from a dependency to the tasks that wait for it, i.e.
// along the direction of execution.
type Diagrammer struct {
	RankDir string
}

func (dia *Diagrammer) WriteDot(w io.Writer, prj *Project) error {
	fmt.Fprintf(w, "digraph \"%s\" {\n", escDotID(prj.String()))
	if dia.RankDir != "" {
		fmt.Fprintf(w, "\trankdir=\"%s\"\n", escDotID(dia.RankDir))
	}
	for _, t := range prj.Tasks() {
		dia.task(w, t)
	}
	for _, t := range prj.Tasks() {
		for _, dep := range t.DependsOn() {
			fmt.Fprintf(w, "\t\"%s\" -> \"%s\";\n", escDotID(dep), escDotID(t.Name()))
		}
	}
	fmt.Fprintln(w, "}")
	return nil
}

func (dia *Diagrammer) task(w io.Writer, t Task) {
	var style string
	if len(t.Inputs()) == 0 && len(t.Outputs()) == 0 {
		style = ",style=\"rounded,dashed\""
	} else {
		style = ",style=\"rounded\""
	}
	label := t.Name()
	if mod := t.Module(); mod != nil {
		label = fmt.Sprintf("{%s|%s}", escDotID(mod.Path()), escDotID(t.Name()))
		fmt.Fprintf(w, "\t\"%s\" [shape=record,label=\"%s\"];\n",
			escDotID(t.Name()),
			label,
		)
		return
	}
	fmt.Fprintf(w, "\t\"%s\" [shape=box%s,label=\"%s\"];\n",
		escDotID(t.Name()),
		style,
		escDotID(label),
	)
}

func escDotID(id string) string {
	return strings.ReplaceAll(id, "\"", "\\\"")
}
