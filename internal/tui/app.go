// Package tui provides the interactive Bubble Tea dashboard for srvburn.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"srvburn/internal/cli"
	"srvburn/internal/config"
	"srvburn/internal/engine"
	"srvburn/internal/model"
	"srvburn/internal/source"
	"srvburn/internal/tui/components"
	"srvburn/internal/tui/theme"
)

// DataLoadedMsg is sent when the server list finishes loading.
type DataLoadedMsg struct {
	Servers   []model.Server
	Malformed int
	NotList   bool
	Err       error
}

// App is the root Bubble Tea model.
type App struct {
	cfg   config.Config
	money cli.MoneyConfig

	// Data
	servers   []model.Server
	loaded    bool
	notList   bool
	malformed int
	loadErr   error

	// Computed for the current mode
	mode     model.Mode
	report   model.Report
	forecast []model.ForecastPoint

	// UI state
	width  int
	height int
	spin   spinner.Model
}

// NewApp builds the dashboard model from the given configuration.
func NewApp(cfg config.Config) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return &App{
		cfg:  cfg,
		mode: model.ModeProrated,
		money: cli.MoneyConfig{
			Symbol:            cfg.Display.CurrencySymbol,
			Locale:            cfg.Display.Locale,
			MinFractionDigits: cfg.Display.MinFractionDigits,
			MaxFractionDigits: cfg.Display.MaxFractionDigits,
		},
		spin: sp,
	}
}

// Init kicks off the data load.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.loadCmd())
}

func (a *App) loadCmd() tea.Cmd {
	cfg := a.cfg
	return func() tea.Msg {
		var (
			result *source.LoadResult
			err    error
		)
		if cfg.General.ServersURL != "" {
			result, err = source.FetchURL(context.Background(), cfg.General.ServersURL)
		} else {
			result, err = source.LoadFile(config.ExpandPath(cfg.General.ServersFile))
		}
		if err != nil {
			if errors.Is(err, source.ErrNotList) {
				return DataLoadedMsg{NotList: true}
			}
			return DataLoadedMsg{Err: err}
		}
		return DataLoadedMsg{Servers: result.Servers, Malformed: result.Malformed}
	}
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.servers = msg.Servers
		a.malformed = msg.Malformed
		a.notList = msg.NotList
		a.loadErr = msg.Err
		a.recompute()
		return a, nil

	case spinner.TickMsg:
		if a.loaded {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return a, tea.Quit
		case "r":
			a.loaded = false
			return a, tea.Batch(a.spin.Tick, a.loadCmd())
		case "f":
			if a.mode == model.ModeProrated {
				a.mode = model.ModeFlat
			} else {
				a.mode = model.ModeProrated
			}
			a.recompute()
			return a, nil
		}
	}
	return a, nil
}

func (a *App) recompute() {
	now := time.Now()
	a.report = engine.Compute(a.servers, engine.Options{
		Now:         now,
		HorizonDays: a.cfg.General.HorizonDays,
		Mode:        a.mode,
	})
	a.forecast = engine.ForecastMonthly(a.servers, a.cfg.General.MonthsAhead, now)
}

// View renders the dashboard.
func (a *App) View() string {
	t := theme.Active
	width := a.width
	if width < 40 {
		width = 80
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.TextPrimary).
		Render(fmt.Sprintf(" srvburn — %s mode ", a.mode))

	if !a.loaded {
		return "\n " + a.spin.View() + " loading server list...\n"
	}

	var b strings.Builder
	b.WriteString("\n ")
	b.WriteString(title)
	b.WriteString("\n\n")

	b.WriteString(a.viewMetricCards(width))
	b.WriteString("\n")
	b.WriteString(a.viewForecast(width))
	b.WriteString("\n")
	b.WriteString(a.viewServers(width))
	b.WriteString("\n")
	b.WriteString(a.viewFooter())
	return b.String()
}

func (a *App) viewMetricCards(width int) string {
	r := a.report

	cards := [][2]string{
		{"Daily burn", cli.FormatMoneyPerDay(r.TotalDailyCost, a.money)},
		{fmt.Sprintf("Next %dd", r.HorizonDays), cli.FormatMoney(r.TotalInHorizon, a.money)},
		{"Active servers", fmt.Sprintf("%d / %d", r.ActiveServers, r.TotalServers)},
	}
	if a.cfg.Budget.Monthly > 0 {
		monthly := r.TotalDailyCost * engine.AvgDaysPerMonth
		pct := monthly / a.cfg.Budget.Monthly * 100
		cards = append(cards, [2]string{
			"Budget",
			fmt.Sprintf("%s (%.0f%%)", cli.FormatMoney(a.cfg.Budget.Monthly, a.money), pct),
		})
	}

	return components.MetricCardRow(cards, width-2)
}

func (a *App) viewForecast(width int) string {
	points := a.forecast
	if len(points) > 12 {
		points = points[:12]
	}

	values := make([]float64, len(points))
	labels := make([]string, len(points))
	for i, p := range points {
		values[i] = p.Cost
		labels[i] = p.Month.Format("Jan")
	}

	chart := components.BarChart(values, labels, 6)
	return components.ContentCard("Monthly forecast", chart, width-2)
}

func (a *App) viewServers(width int) string {
	t := theme.Active
	if a.notList {
		return components.ContentCard("Servers",
			lipgloss.NewStyle().Foreground(t.Orange).Render("data source is not a server list"),
			width-2)
	}
	if a.loadErr != nil {
		return components.ContentCard("Servers",
			lipgloss.NewStyle().Foreground(t.Red).Render(a.loadErr.Error()),
			width-2)
	}

	now := a.report.GeneratedAt
	var rows []string
	shown := 0
	for _, s := range a.servers {
		if s.MonthlyCost <= 0 {
			continue
		}
		if shown >= 8 {
			rows = append(rows, lipgloss.NewStyle().Foreground(t.TextDim).
				Render(fmt.Sprintf("… and %d more", a.report.TotalServers-shown)))
			break
		}
		shown++

		expiry := "invalid date"
		style := lipgloss.NewStyle().Foreground(t.Red)
		if s.ExpiryValid {
			expiry = cli.FormatDaysLeft(s.DaysLeft(now))
			if s.Expiry.After(now) {
				style = lipgloss.NewStyle().Foreground(t.TextPrimary)
			} else {
				style = lipgloss.NewStyle().Foreground(t.TextDim)
			}
		}
		rows = append(rows, style.Render(fmt.Sprintf("%-20s %10s %10s",
			s.Label(), cli.FormatMoney(s.MonthlyCost, a.money), expiry)))
	}
	if len(rows) == 0 {
		rows = append(rows, lipgloss.NewStyle().Foreground(t.TextMuted).Render("no server data"))
	}

	body := strings.Join(rows, "\n")
	if len(a.report.Warnings) > 0 && a.report.TotalServers > 0 {
		body += "\n" + lipgloss.NewStyle().Foreground(t.Orange).
			Render(fmt.Sprintf("%d warning(s) — see `srvburn summary`", len(a.report.Warnings)))
	}
	return components.ContentCard("Servers", body, width-2)
}

func (a *App) viewFooter() string {
	t := theme.Active
	help := "r reload · f flat/prorated · q quit"
	if a.malformed > 0 {
		help = fmt.Sprintf("%d malformed record(s) skipped · %s", a.malformed, help)
	}
	return lipgloss.NewStyle().Foreground(t.TextDim).Render(" " + help)
}
