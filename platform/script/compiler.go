package script

import "io"

// Compiler validates rule input and turns it into ExecutableContent. Compile owns
// the reader and closes it.
type Compiler interface {
	Compile(scriptReader io.ReadCloser) (ExecutableContent, error)
}
