// Package tui is the interactive terminal front end: the three statutory
// reports and the verification journal for a chosen year and period.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/simonvc/huvudbok/internal/client"
	"github.com/simonvc/huvudbok/internal/ledger"
)

type mode int

const (
	modeBalanceSheet mode = iota
	modeIncomeStatement
	modeVatReport
	modeTransactionList
	modeTransactionDetail
)

var tabModes = []mode{modeBalanceSheet, modeIncomeStatement, modeVatReport, modeTransactionList}

func tabLabel(m mode) string {
	switch m {
	case modeBalanceSheet:
		return "Balansräkning"
	case modeIncomeStatement:
		return "Resultaträkning"
	case modeVatReport:
		return "Moms"
	case modeTransactionList:
		return "Verifikationer"
	default:
		return ""
	}
}

// chromeHeight is the number of lines taken by the tab bar, status line
// and help.
const chromeHeight = 6

type App struct {
	client        *client.Client
	mode          mode
	tabIndex      int
	year          int
	periodIndex   int
	width, height int
	statusMsg     string

	balanceSheet    balanceSheetModel
	incomeStatement incomeStatementModel
	vatReport       vatReportModel
	txnList         txnListModel
	txnDetail       txnDetailModel

	viewport viewport.Model
	help     help.Model
}

// NewApp opens on the balance sheet for the whole of year. A zero year
// means the current calendar year.
func NewApp(c *client.Client, year int) *App {
	if year == 0 {
		year = time.Now().Year()
	}
	return &App{
		client:   c,
		mode:     modeBalanceSheet,
		year:     year,
		viewport: viewport.New(80, 20),
		help:     help.New(),
	}
}

func (a *App) period() string {
	return ledger.Periods[a.periodIndex]
}

func (a *App) Init() tea.Cmd {
	return a.reloadAll()
}

// reloadAll refetches every tab for the selected year and period.
func (a *App) reloadAll() tea.Cmd {
	return tea.Batch(
		a.balanceSheet.init(a.client, a.year, a.period()),
		a.incomeStatement.init(a.client, a.year),
		a.vatReport.init(a.client, a.year, a.period()),
		a.txnList.init(a.client, a.year),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = msg.Width
		a.viewport.Height = max(msg.Height-chromeHeight, 1)
		a.txnList.height = msg.Height - chromeHeight
		a.help.Width = msg.Width
		a.refreshViewport()
		return a, nil

	// Loaded messages go to their model whichever tab is showing.
	case balanceSheetLoadedMsg:
		a.balanceSheet = a.balanceSheet.update(msg)
		a.refreshViewport()
		return a, nil
	case incomeStatementLoadedMsg:
		a.incomeStatement = a.incomeStatement.update(msg)
		a.refreshViewport()
		return a, nil
	case vatReportLoadedMsg:
		a.vatReport = a.vatReport.update(msg)
		a.refreshViewport()
		return a, nil
	case txnsLoadedMsg:
		var cmd tea.Cmd
		a.txnList, cmd = a.txnList.update(msg)
		return a, cmd
	case txnDetailLoadedMsg:
		a.txnDetail = a.txnDetail.update(msg)
		a.refreshViewport()
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			return a, nil

		case key.Matches(msg, keys.Tab):
			a.switchTab(1)
			return a, nil

		case key.Matches(msg, keys.ShiftTab):
			a.switchTab(-1)
			return a, nil

		case key.Matches(msg, keys.Escape):
			if a.mode == modeTransactionDetail {
				a.mode = modeTransactionList
			}
			return a, nil

		case key.Matches(msg, keys.PrevYear):
			if a.year > 1 {
				a.year--
			}
			a.statusMsg = ""
			return a, a.reloadAll()

		case key.Matches(msg, keys.NextYear):
			if a.year < 9999 {
				a.year++
			}
			a.statusMsg = ""
			return a, a.reloadAll()

		case key.Matches(msg, keys.PrevPeriod):
			a.periodIndex = (a.periodIndex - 1 + len(ledger.Periods)) % len(ledger.Periods)
			return a, a.reloadAll()

		case key.Matches(msg, keys.NextPeriod):
			a.periodIndex = (a.periodIndex + 1) % len(ledger.Periods)
			return a, a.reloadAll()

		case key.Matches(msg, keys.Reload):
			a.statusMsg = fmt.Sprintf("Reloaded %d %s", a.year, a.period())
			return a, a.reloadAll()

		case key.Matches(msg, keys.Enter):
			if a.mode == modeTransactionList {
				if id := a.txnList.selectedID(); id != "" {
					a.mode = modeTransactionDetail
					cmd := a.txnDetail.init(a.client, id)
					a.refreshViewport()
					return a, cmd
				}
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	if a.mode == modeTransactionList {
		a.txnList, cmd = a.txnList.update(msg)
		return a, cmd
	}
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a *App) switchTab(step int) {
	a.tabIndex = (a.tabIndex + step + len(tabModes)) % len(tabModes)
	a.mode = tabModes[a.tabIndex]
	a.statusMsg = ""
	a.refreshViewport()
	a.viewport.GotoTop()
}

// refreshViewport puts the active report into the scrolling viewport.
func (a *App) refreshViewport() {
	switch a.mode {
	case modeBalanceSheet:
		a.viewport.SetContent(a.balanceSheet.view())
	case modeIncomeStatement:
		a.viewport.SetContent(a.incomeStatement.view())
	case modeVatReport:
		a.viewport.SetContent(a.vatReport.view())
	case modeTransactionDetail:
		a.viewport.SetContent(a.txnDetail.view())
	}
}

func (a *App) View() string {
	tabs := ""
	for i, m := range tabModes {
		label := tabLabel(m)
		if i == a.tabIndex {
			tabs += activeTabStyle.Render(label)
		} else {
			tabs += inactiveTabStyle.Render(label)
		}
		tabs += " "
	}
	tabs += periodStyle.Render(fmt.Sprintf("%d  %s", a.year, a.period()))

	var content string
	if a.mode == modeTransactionList {
		content = a.txnList.view()
	} else {
		content = a.viewport.View()
	}

	status := subtitleStyle.Render(fmt.Sprintf("%3.f%%", a.viewport.ScrollPercent()*100))
	if a.mode == modeTransactionList {
		status = ""
	}
	if a.statusMsg != "" {
		status = successStyle.Render(a.statusMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tabs,
		"",
		content,
		status,
		a.help.View(keys),
	)
}
