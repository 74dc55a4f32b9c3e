package cli

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/panelfit/pkg/geom"
	"github.com/matzehuels/panelfit/pkg/layout"
	"github.com/matzehuels/panelfit/pkg/layout/rows"
	"github.com/matzehuels/panelfit/pkg/pipeline"
	"github.com/matzehuels/panelfit/pkg/scene"
)

// previewChrome is the number of terminal lines not used by the canvas.
const previewChrome = 2

var tileColors = []lipgloss.Color{"36", "35", "75", "220", "167", "141", "114", "209"}

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "preview [scene.json|scene.toml]",
		Short: "Preview a scene in the terminal",
		Long: `Preview a scene in the terminal.

The container follows the terminal size: every resize lays the items out
again. One terminal cell stands for a fixed number of scene units, chosen so
that the scene's own container fills an 80x24 terminal.

Keys: r toggle randomize, s reseed, t cycle row style, a cycle alignment,
g cycle gap policy, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, opts, err := c.loadScene(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			m, err := newPreviewModel(filepath.Base(args[0]), sc, opts)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	flags.register(cmd)

	return cmd
}

// previewModel is the bubbletea model behind the preview command.
type previewModel struct {
	title string
	scene *scene.Scene
	opts  pipeline.Options
	boxes []*layout.Box
	items []layout.Item
	coord *layout.Coordinator
	// cell is the number of scene units per terminal cell.
	cell geom.Size

	width, height int
	result        layout.Result
	err           error
}

func newPreviewModel(title string, sc *scene.Scene, opts pipeline.Options) (previewModel, error) {
	lo, err := opts.LayoutOptions(sc)
	if err != nil {
		return previewModel{}, err
	}
	boxes := sc.Boxes()
	return previewModel{
		title: title,
		scene: sc,
		opts:  opts,
		boxes: boxes,
		items: scene.LayoutItems(boxes),
		// The logger would draw over the alternate screen.
		coord: layout.New(lo, nil),
		cell:  cellSize(opts.Container()),
	}, nil
}

// cellSize maps container onto an 80x24 terminal.
func cellSize(container geom.Size) geom.Size {
	return geom.Size{
		Width:  max(1, ceilDiv(container.Width, 80)),
		Height: max(1, ceilDiv(container.Height, 24-previewChrome)),
	}
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

func (m previewModel) Init() tea.Cmd { return nil }

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m.relayout(), nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.opts.Randomize = pipeline.Bool(!m.opts.IsRandomized())
		case "s":
			m.opts.Seed = pipeline.Uint64(m.opts.SeedValue() + 1)
		case "t":
			m.opts.Style = cycle(rows.StyleNames, m.opts.Style)
		case "a":
			m.opts.Align = cycle(rows.AlignNames, m.opts.Align)
		case "g":
			m.opts.Gap = cycle(rows.GapNames, m.opts.Gap)
		default:
			return m, nil
		}
		return m.reconfigure(), nil
	}
	return m, nil
}

// cycle returns the name after cur, wrapping around.
func cycle(names []string, cur string) string {
	i := slices.Index(names, strings.ToLower(cur))
	return names[(i+1)%len(names)]
}

func (m previewModel) reconfigure() previewModel {
	lo, err := m.opts.LayoutOptions(m.scene)
	if err != nil {
		m.err = err
		return m
	}
	m.err = nil
	m.coord.SetOptions(lo)
	return m.relayout()
}

// container is the layout area covered by the terminal canvas.
func (m previewModel) container() geom.Size {
	return geom.Size{
		Width:  m.width * m.cell.Width,
		Height: max(0, m.height-previewChrome) * m.cell.Height,
	}
}

func (m previewModel) relayout() previewModel {
	if m.width == 0 {
		return m
	}
	m.result = m.coord.Layout(m.items, m.container())
	return m
}

func (m previewModel) View() string {
	if m.width == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title) + " " + StyleDim.Render(m.status()))
	b.WriteString("\n")
	b.WriteString(m.canvas())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError + " " + m.err.Error()))
	} else {
		b.WriteString(StyleDim.Render("r randomize · s reseed · t style · a align · g gap · q quit"))
	}
	return b.String()
}

func (m previewModel) status() string {
	engine := m.result.Engine
	if m.result.FellBack {
		engine += " (fallback)"
	}
	return fmt.Sprintf("%s · seed %d · %s/%s/%s · %d items · %s",
		engine, m.coord.Options().Seed,
		m.opts.Style, m.opts.Align, m.opts.Gap,
		len(m.result.Positions), m.container())
}

// canvas draws every visible box as a bordered tile.
func (m previewModel) canvas() string {
	rowsN := max(0, m.height-previewChrome)
	grid := make([][]rune, rowsN)
	colors := make([][]int, rowsN)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", m.width))
		colors[y] = slices.Repeat([]int{-1}, m.width)
	}

	set := func(x, y int, r rune, color int) {
		if y >= 0 && y < rowsN && x >= 0 && x < m.width {
			grid[y][x] = r
			colors[y][x] = color
		}
	}

	for i, b := range layout.Visible(m.boxes) {
		r := b.Rect()
		if r.Width <= 0 || r.Height <= 0 {
			continue
		}
		x0, y0 := r.X/m.cell.Width, r.Y/m.cell.Height
		x1, y1 := (r.Right()-1)/m.cell.Width, (r.Bottom()-1)/m.cell.Height
		color := i % len(tileColors)

		if x0 == x1 || y0 == y1 {
			for y := y0; y <= y1; y++ {
				for x := x0; x <= x1; x++ {
					set(x, y, '█', color)
				}
			}
			continue
		}
		for x := x0 + 1; x < x1; x++ {
			set(x, y0, '─', color)
			set(x, y1, '─', color)
		}
		for y := y0 + 1; y < y1; y++ {
			set(x0, y, '│', color)
			set(x1, y, '│', color)
		}
		set(x0, y0, '┌', color)
		set(x1, y0, '┐', color)
		set(x0, y1, '└', color)
		set(x1, y1, '┘', color)

		label := b.ID
		if b.Label != "" {
			label = b.Label
		}
		if y1-y0 >= 2 {
			for j, ch := range []rune(label) {
				if x0+1+j >= x1 {
					break
				}
				set(x0+1+j, y0+1, ch, color)
			}
		}
	}

	lines := make([]string, rowsN)
	for y := range grid {
		lines[y] = renderLine(grid[y], colors[y])
	}
	return strings.Join(lines, "\n")
}

// renderLine styles runs of equally colored cells.
func renderLine(cells []rune, colors []int) string {
	var b strings.Builder
	for start := 0; start < len(cells); {
		end := start + 1
		for end < len(cells) && colors[end] == colors[start] {
			end++
		}
		run := string(cells[start:end])
		if c := colors[start]; c >= 0 {
			run = lipgloss.NewStyle().Foreground(tileColors[c]).Render(run)
		}
		b.WriteString(run)
		start = end
	}
	return b.String()
}
