package gomkrel

import (
	"io"
	"os"
)

func Example_prefixWriter() {
	pw := newPrefixWriter(os.Stdout, "fmt:")
	io.WriteString(pw, "foo")
	io.WriteString(pw, "bar\n")
	io.WriteString(pw, "baz\nquux")
	// Output:
	// fmt:foobar
	// fmt:baz
	// fmt:quux
}
