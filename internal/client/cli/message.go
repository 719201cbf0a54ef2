package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/arnorgym/internal/client/auth"
	"github.com/dmitrijs2005/arnorgym/internal/client/services"
	"github.com/dmitrijs2005/arnorgym/internal/client/transfer"
	"github.com/dmitrijs2005/arnorgym/internal/common"
	"github.com/dmitrijs2005/arnorgym/internal/timex"
)

type MessageKind int

const (
	MessageSuccess MessageKind = iota
	MessageError
	MessageInfo
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 2)
)

func renderMessage(kind MessageKind, text string) string {
	switch kind {
	case MessageSuccess:
		return successStyle.Render("✔ " + text)
	case MessageError:
		return errorStyle.Render("✘ " + text)
	default:
		return infoStyle.Render("ℹ " + text)
	}
}

func (a *App) success(format string, args ...any) {
	printlnFn(renderMessage(MessageSuccess, fmt.Sprintf(format, args...)))
}

func (a *App) info(format string, args ...any) {
	printlnFn(renderMessage(MessageInfo, fmt.Sprintf(format, args...)))
}

// fail shows the user-facing text for err. fallback is used for errors
// that have no dedicated text.
func (a *App) fail(err error, fallback string) {
	printlnFn(renderMessage(MessageError, userMessage(err, fallback)))
}

func userMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, auth.ErrMissingFields):
		return "please fill in all required fields"
	case errors.Is(err, auth.ErrPasswordMismatch):
		return "password and confirmation do not match"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "account or password incorrect"
	case errors.Is(err, auth.ErrConflict):
		return "account already exists, choose another username"
	case errors.Is(err, auth.ErrNotFound):
		return "account not found"
	case errors.Is(err, common.ErrFormat):
		return "invalid JSON format, import failed"
	case errors.Is(err, transfer.ErrNotJSON):
		return "please choose a .json file"
	case errors.Is(err, common.ErrStorage):
		return "save failed, please try again later"
	default:
		return fallback
	}
}

func renderDashboard(p services.Profile) string {
	email, role := "-", "member"
	registered := p.Session.LoginTime
	if p.Known {
		if p.Record.Email != "" {
			email = p.Record.Email
		}
		if p.Record.Role != "" {
			role = p.Record.Role
		}
		if !p.Record.RegisteredAt.IsZero() {
			registered = p.Record.RegisteredAt.Time
		}
	}

	lines := []string{
		titleStyle.Render("ARNOR GYM"),
		"",
		fmt.Sprintf("Welcome back, %s!", p.Session.Username),
		"Email:        " + email,
		"Role:         " + role,
		"Member since: " + registered.Local().Format(time.DateOnly),
		"Logged in at: " + timex.FormatISO(p.Session.LoginTime),
		"",
		"Commands: whoami, logout, help",
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
