package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasort/pkg/compile"
)

// newSettingsCmd creates the settings command: an interactive toggle list
// over the persistent settings file. Non-interactive use can pass --show to
// print the effective settings instead.
func newSettingsCmd() *cobra.Command {
	var config string
	var show bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Edit the persistent compile settings interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := settingsPath(config)
			s, err := loadSettings(path, config != "")
			if err != nil {
				return err
			}

			if show {
				printSettings(s)
				return nil
			}

			model := newSettingsModel(s)
			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return err
			}
			m := final.(settingsModel)
			if !m.saved {
				printInfo("settings unchanged")
				return nil
			}
			if err := saveSettings(path, m.settings()); err != nil {
				return err
			}
			printSuccess("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&config, "config", "", "settings file (default "+DefaultSettingsFile+")")
	cmd.Flags().BoolVar(&show, "show", false, "print the effective settings and exit")

	return cmd
}

func printSettings(s compile.Settings) {
	rows := []struct {
		name string
		on   bool
	}{
		{"color sort (nodes)", s.ColorSortNodes},
		{"color sort (edges)", s.ColorSortEdges},
		{"flow sort", s.FlowSortNodes},
		{"semantic orphans", s.SemanticSortOrphans},
		{"strip metadata", s.StripMetadata},
		{"strip edges when flow-sorted", s.StripEdgesWhenFlowSorted},
	}
	for _, r := range rows {
		state := "off"
		if r.on {
			state = "on"
		}
		fmt.Println("  " + StyleValue.Render(fmt.Sprintf("%-30s", r.name)) + StyleDim.Render(state))
	}
}

// toggle is one boolean setting in the interactive list.
type toggle struct {
	name string
	desc string
	on   bool
}

// settingsModel is the bubbletea model for the settings toggle list.
type settingsModel struct {
	toggles []toggle
	cursor  int
	saved   bool
}

func newSettingsModel(s compile.Settings) settingsModel {
	return settingsModel{
		toggles: []toggle{
			{"color sort (nodes)", "use color as a node sort key", s.ColorSortNodes},
			{"color sort (edges)", "use color as an edge sort key", s.ColorSortEdges},
			{"flow sort", "order connected nodes by flow depth along arrows", s.FlowSortNodes},
			{"semantic orphans", "group root orphans by type/color/content instead of position", s.SemanticSortOrphans},
			{"strip metadata", "export pure data: drop positions, embed labeled edges", s.StripMetadata},
			{"strip edges when flow-sorted", "drop unlabeled edges when flow order makes them implicit", s.StripEdgesWhenFlowSorted},
		},
	}
}

// settings converts the toggle state back into compile settings. Toggle
// order must match newSettingsModel.
func (m settingsModel) settings() compile.Settings {
	return compile.Settings{
		ColorSortNodes:           m.toggles[0].on,
		ColorSortEdges:           m.toggles[1].on,
		FlowSortNodes:            m.toggles[2].on,
		SemanticSortOrphans:      m.toggles[3].on,
		StripMetadata:            m.toggles[4].on,
		StripEdgesWhenFlowSorted: m.toggles[5].on,
	}
}

func (m settingsModel) Init() tea.Cmd {
	return nil
}

func (m settingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.toggles)-1 {
				m.cursor++
			}
		case " ", "x":
			m.toggles[m.cursor].on = !m.toggles[m.cursor].on
		case "enter", "s":
			m.saved = true
			return m, tea.Quit
		}
	}
	return m, nil
}

var (
	toggleOnStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	toggleOffStyle = lipgloss.NewStyle().Foreground(colorDim)
)

func (m settingsModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("canvasort settings"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  space toggle  ⏎ save  q quit"))
	b.WriteString("\n\n")

	for i, t := range m.toggles {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		box := toggleOffStyle.Render("[ ]")
		if t.on {
			box = toggleOnStyle.Render("[x]")
		}

		name := t.name
		if i == m.cursor {
			name = StyleValue.Render(name)
		} else {
			name = StyleDim.Render(name)
		}

		fmt.Fprintf(&b, "%s%s %s\n", cursor, box, name)
		if i == m.cursor {
			b.WriteString("      " + StyleDim.Render(t.desc) + "\n")
		}
	}

	return b.String()
}
