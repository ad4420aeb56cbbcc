package loader

import (
	"bufio"
	"io"

	"github.com/PolarWolf314/dotenvage/internal/envfile"
	"github.com/PolarWolf314/dotenvage/internal/secrets"
)

// DumpTo writes env as NAME=value lines in merged order. Variables holding
// or naming age keys are omitted.
func DumpTo(w io.Writer, env *Env) error {
	bw := bufio.NewWriter(w)
	for _, v := range env.Vars() {
		if secrets.IsKeyMaterialVar(v.Name) {
			continue
		}
		if _, err := bw.WriteString(v.Name + "=" + envfile.Quote(v.Value) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
