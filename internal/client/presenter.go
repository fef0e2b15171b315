package client

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Faint(true).Width(10)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	hintStyle    = lipgloss.NewStyle().Faint(true)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// presenter writes effects and screen state to the terminal.
type presenter struct {
	out io.Writer
}

func newPresenter(out io.Writer) *presenter {
	return &presenter{out: out}
}

func (p *presenter) effects(effects []Effect) {
	for _, e := range effects {
		switch e := e.(type) {
		case ShowError:
			fmt.Fprintln(p.out, errorStyle.Render("error: ")+e.Message)
		case ShowSuccess:
			fmt.Fprintln(p.out, successStyle.Render(e.Message))
		case NavigateToLogin:
			fmt.Fprintln(p.out, hintStyle.Render("not logged in, run: client login -u <username>"))
		}
	}
}

func (p *presenter) status(st SessionScreen) {
	rows := []string{row("session", st.Session.String())}
	if st.Session == models.StateLoggedIn {
		rows = append(rows, row("scheme", st.Info.Scheme))
		if st.Info.Subject != "" {
			rows = append(rows, row("subject", st.Info.Subject))
		}
		if st.Info.HasExpiry() {
			rows = append(rows, row("expires", st.Info.ExpiresAt.Local().Format(time.RFC1123)))
		}
	}

	p.box("Session", rows)
}

func (p *presenter) user(title string, u *models.User) {
	if u == nil {
		return
	}

	rows := []string{
		row("id", fmt.Sprint(u.ID)),
		row("username", u.Username),
	}
	if u.Email != "" {
		rows = append(rows, row("email", u.Email))
	}
	if name := u.FullName(); name != "" {
		rows = append(rows, row("name", name))
	}
	if u.Role != "" {
		rows = append(rows, row("role", u.Role))
	}

	p.box(title, rows)
}

func (p *presenter) text(s string) {
	fmt.Fprintln(p.out, s)
}

func (p *presenter) box(title string, rows []string) {
	body := titleStyle.Render(title) + "\n" + strings.Join(rows, "\n")
	fmt.Fprintln(p.out, boxStyle.Render(body))
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}
