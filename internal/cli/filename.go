package cli

import (
	"fmt"

	"github.com/gosc3k/ixfkit/directory"
	"github.com/gosc3k/ixfkit/format"
)

// Filename returns the output filename for one extracted entry:
// 0x{Type:X8}_0x{Group:X8}_0x{Instance:X8}{.ext}, with ext chosen by the
// entry's resource-type tag.
func Filename(e directory.Entry) string {
	typ := format.TypeTag(e.Type)

	return fmt.Sprintf("0x%08X_0x%08X_0x%08X%s", e.Type, e.Group, e.Instance, typ.Extension())
}
