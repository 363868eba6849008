// Package selectcmd provides the select command.
package selectcmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdt/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mdt/internal/view"
	"github.com/open-cli-collective/mdt/pkg/document"
	"github.com/open-cli-collective/mdt/pkg/layout"
	"github.com/open-cli-collective/mdt/pkg/render"
	"github.com/open-cli-collective/mdt/pkg/selection"
	"github.com/open-cli-collective/mdt/pkg/textrange"
)

type selectOptions struct {
	block    int
	from     string
	to       string
	at       string
	modifier bool
}

// Result is the outcome of a selection.
type Result struct {
	Block    int                `json:"block"`
	Selected bool               `json:"selected"`
	Range    *textrange.Range   `json:"range,omitempty"`
	Text     string             `json:"text,omitempty"`
	Rects    []selection.Bounds `json:"rects,omitempty"`
	Link     *document.LinkMark `json:"link,omitempty"`
}

// NewCmdSelect creates the select command.
func NewCmdSelect() *cobra.Command {
	opts := &selectOptions{}

	cmd := &cobra.Command{
		Use:   "select [file]",
		Short: "Compute a drag selection over a rendered block",
		Long: `Lay a rendered block out on a monospace grid and compute which characters
a drag from --from to --to selects, and the rectangles that paint it.

Coordinates are pixels relative to the block's top-left corner. The grid
uses the configured char_width, line_height and wrap_width. With --at the
link under that point is reported; links inside inline code only open
with --modifier.`,
		Example: `  # Select across the first block
  mdt select README.md --from 0,0 --to 120,10

  # Which link is under a point, holding the modifier key
  mdt select README.md --block 2 --at 35,5 --modifier`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cmdutil.Setup(cmd)
			if err != nil {
				return err
			}
			return runSelect(env, args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.block, "block", 0, "Rendered block to select in (0-based)")
	cmd.Flags().StringVar(&opts.from, "from", "", "Drag start as x,y")
	cmd.Flags().StringVar(&opts.to, "to", "", "Drag end as x,y")
	cmd.Flags().StringVar(&opts.at, "at", "", "Report the link under x,y")
	cmd.Flags().BoolVar(&opts.modifier, "modifier", false, "Treat the modifier key as held")

	return cmd
}

func runSelect(env *cmdutil.Env, args []string, opts *selectOptions) error {
	if (opts.from == "") != (opts.to == "") {
		return fmt.Errorf("--from and --to must be given together")
	}
	if opts.from == "" && opts.at == "" {
		return fmt.Errorf("nothing to do: pass --from and --to, or --at")
	}

	doc, err := env.Parse(args)
	if err != nil {
		return err
	}
	inlines := render.Document(doc, env.Config.RenderTheme())
	if opts.block < 0 || opts.block >= len(inlines) {
		return fmt.Errorf("block %d out of range (document has %d rendered blocks)", opts.block, len(inlines))
	}
	in := inlines[opts.block]
	grid := layout.NewMono(in.Text, env.Config.LayoutOptions())

	result := Result{Block: opts.block}
	if opts.from != "" {
		from, err := ParsePoint(opts.from)
		if err != nil {
			return fmt.Errorf("invalid --from: %w", err)
		}
		to, err := ParsePoint(opts.to)
		if err != nil {
			return fmt.Errorf("invalid --to: %w", err)
		}
		Select(&result, in.Text, grid, DragBounds(from, to))
	}
	if opts.at != "" {
		at, err := ParsePoint(opts.at)
		if err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
		if link, ok := selection.LinkAt(in.Links, grid, at, opts.modifier); ok {
			result.Link = &link
		}
	}

	if handled, err := env.Renderer.Render(result); handled {
		return err
	}
	renderResult(env.Renderer, result, opts)
	return nil
}

// Select fills r with the selection of bounds over text laid out on grid.
func Select(r *Result, text string, grid *layout.Mono, bounds selection.Bounds) {
	rng, ok := selection.Compute(text, grid, bounds, grid.LineHeight())
	if !ok {
		return
	}
	r.Selected = true
	r.Range = &rng
	r.Text = selection.Text(text, rng)
	r.Rects = selection.RangeRects(rng, grid, grid.Bounds(), grid.LineHeight())
}

func renderResult(r *view.Renderer, result Result, opts *selectOptions) {
	if opts.from != "" {
		if !result.Selected {
			r.RenderKeyValue("Range", "-")
		} else {
			r.RenderKeyValue("Range", result.Range.String())
			r.RenderKeyValue("Text", view.OneLine(result.Text))
			for i, rect := range result.Rects {
				r.RenderKeyValue("Rect "+strconv.Itoa(i), FormatBounds(rect))
			}
		}
	}
	if opts.at != "" {
		if result.Link == nil {
			r.RenderKeyValue("Link", "-")
		} else {
			r.RenderKeyValue("Link", result.Link.URL)
		}
	}
}

// ParsePoint parses "x,y".
func ParsePoint(s string) (selection.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return selection.Point{}, fmt.Errorf("expected x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 32)
	if err != nil {
		return selection.Point{}, fmt.Errorf("invalid x %q", xs)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 32)
	if err != nil {
		return selection.Point{}, fmt.Errorf("invalid y %q", ys)
	}
	return selection.Point{X: float32(x), Y: float32(y)}, nil
}

// DragBounds returns the rectangle between two drag points, whichever
// direction the drag went.
func DragBounds(a, b selection.Point) selection.Bounds {
	return selection.FromCorners(
		selection.Point{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		selection.Point{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	)
}

// FormatBounds formats a rectangle as "x,y wxh".
func FormatBounds(b selection.Bounds) string {
	f := func(v float32) string { return strconv.FormatFloat(float64(v), 'f', -1, 32) }
	return f(b.Left()) + "," + f(b.Top()) + " " + f(b.Size.Width) + "x" + f(b.Size.Height)
}
