// Package term renders the user extra page models for a terminal.
package term

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	xterm "golang.org/x/term"

	"userextra/internal/view"
)

type styles struct {
	heading lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	label   lipgloss.Style
	notice  lipgloss.Style
	err     lipgloss.Style
	box     lipgloss.Style
}

func newStyles(lr *lipgloss.Renderer) styles {
	return styles{
		heading: lr.NewStyle().Bold(true).MarginBottom(1),
		header:  lr.NewStyle().Bold(true).Padding(0, 1),
		cell:    lr.NewStyle().Padding(0, 1),
		label:   lr.NewStyle().Bold(true).Width(12),
		notice:  lr.NewStyle().Foreground(lipgloss.Color("3")),
		err:     lr.NewStyle().Foreground(lipgloss.Color("1")),
		box:     lr.NewStyle().Padding(0, 1),
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return xterm.IsTerminal(int(f.Fd()))
	}
	return false
}

// Renderer writes pages to a terminal. Styled output uses rounded borders;
// plain output sticks to ASCII so it survives pipes and logs.
type Renderer struct {
	w      io.Writer
	styled bool
	st     styles
}

// NewRenderer detects the color profile of w itself, not of stdout.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w, styled: IsTerminal(w), st: newStyles(lipgloss.NewRenderer(w))}
}

func (r *Renderer) border() lipgloss.Border {
	if r.styled {
		return lipgloss.RoundedBorder()
	}
	return lipgloss.ASCIIBorder()
}

// List prints the heading, then either the table or the not-found notice.
// A loading page with no rows prints only the heading.
func (r *Renderer) List(p view.ListPage) error {
	out := r.st.heading.Render(p.Heading) + "\n"
	if p.ErrorMessage != "" {
		out += r.st.err.Render("error: "+p.ErrorMessage) + "\n"
	}

	switch {
	case p.ShowTable:
		t := table.New().
			Border(r.border()).
			Headers("ID", "Front Image", "Back Image", "User").
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return r.st.header
				}
				return r.st.cell
			})
		for _, row := range p.Rows {
			t.Row(row.ID, row.FrontImage, row.BackImage, row.UserID)
		}
		out += t.Render() + "\n"
	case p.ShowNotFound:
		out += r.st.notice.Render("No User Extras found") + "\n"
	}

	_, err := io.WriteString(r.w, out)
	return err
}

// Detail prints one record as a label/value block.
func (r *Renderer) Detail(p view.DetailPage) error {
	if p.ErrorMessage != "" {
		if _, err := fmt.Fprintln(r.w, r.st.err.Render("error: "+p.ErrorMessage)); err != nil {
			return err
		}
	}

	lines := []string{r.st.heading.Render(fmt.Sprintf("%s [%s]", p.Heading, p.ID))}
	for _, f := range []struct{ label, value string }{
		{"ID", p.ID},
		{"Front Image", p.FrontImage},
		{"Back Image", p.BackImage},
		{"User", p.UserID},
	} {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, r.st.label.Render(f.label), f.value))
	}

	box := r.st.box.Border(r.border()).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	_, err := fmt.Fprintln(r.w, box)
	return err
}
