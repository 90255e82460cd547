package backend

import (
	"context"
	"strconv"
	"strings"

	"github.com/dotforge/dotforge/pkg/errors"
)

// UnflattenOptions configures the Graphviz unflatten preprocessor, which
// improves the aspect ratio of wide, shallow graphs before layout.
type UnflattenOptions struct {
	// Stagger staggers the minimum length of leaf edges between 1 and this
	// small integer (-l). Zero disables staggering.
	Stagger int

	// Fanout fans out nodes with indegree = outdegree = 1 when staggering
	// (-f). Requires Stagger.
	Fanout bool

	// Chain forms disconnected nodes into chains of up to this many nodes
	// (-c). Zero disables chaining.
	Chain int

	// Binary overrides the unflatten executable path.
	Binary string
}

// Unflatten pipes DOT source through the Graphviz unflatten preprocessor and
// returns the transformed source.
func Unflatten(ctx context.Context, src string, opts UnflattenOptions) (string, error) {
	if opts.Fanout && opts.Stagger == 0 {
		return "", errors.New(errors.ErrCodeMissingArgument, "fanout given without stagger")
	}

	bin := opts.Binary
	if bin == "" {
		bin = DefaultUnflattenBinary
	}

	argv := []string{bin}
	if opts.Stagger > 0 {
		argv = append(argv, "-l", strconv.Itoa(opts.Stagger))
	}
	if opts.Fanout {
		argv = append(argv, "-f")
	}
	if opts.Chain > 0 {
		argv = append(argv, "-c", strconv.Itoa(opts.Chain))
	}

	out, err := runner{argv: argv, stdin: strings.NewReader(src), quiet: true}.run(ctx)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
