package modals

import (
	"slices"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// Settings are the values the settings dialog edits. An empty input name
// means no device.
type Settings struct {
	Theme         string
	AudioInput    string
	VideoInput    string
	Notifications bool
}

// ThemeChoice is one entry of the theme picker.
type ThemeChoice struct {
	Key  string
	Name string
}

// SettingsChoices are the options offered by the dialog.
type SettingsChoices struct {
	Themes      []ThemeChoice
	AudioInputs []string
	VideoInputs []string
}

// SettingsState is the settings dialog.
type SettingsState struct {
	original Settings
	edited   Settings

	form  *huh.Form
	width int
}

func (*SettingsState) modalState() {}

func (s *SettingsState) PreferredWidth() int { return ModalWidthWide }

func (s *SettingsState) SetSize(width, height int) {
	s.width = width
	s.form.WithWidth(s.formWidth())
}

// formWidth leaves room for the modal border and padding.
func (s *SettingsState) formWidth() int {
	const frame = 10
	if s.width > 0 {
		return s.width - frame
	}
	return ModalWidthWide - frame
}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string { return "Tab: next field  Enter: save  Esc: cancel" }

func (s *SettingsState) Render() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		ModalTitleStyle.Render(s.Title()),
		s.form.View(),
		ModalHelpStyle.Render(s.Help()),
	)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = formUpdate(s.form, msg)
	return s, cmd
}

// Values returns the settings as edited so far.
func (s *SettingsState) Values() Settings { return s.edited }

// ThemeChanged reports whether a different theme was picked.
func (s *SettingsState) ThemeChanged() bool { return s.edited.Theme != s.original.Theme }

// MediaChanged reports whether either input differs from the saved one.
func (s *SettingsState) MediaChanged() bool {
	return s.edited.AudioInput != s.original.AudioInput ||
		s.edited.VideoInput != s.original.VideoInput
}

// SetMediaInputs picks audio and video inputs without going through the form.
func (s *SettingsState) SetMediaInputs(audio, video string) {
	s.edited.AudioInput, s.edited.VideoInput = audio, video
}

func deviceOptions(devices []string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(devices)+1)
	opts = append(opts, huh.NewOption("None", ""))
	for _, d := range devices {
		opts = append(opts, huh.NewOption(d, d))
	}
	return opts
}

// NewSettingsState opens the dialog on current. A saved input that is no
// longer plugged in shows as none.
func NewSettingsState(current Settings, choices SettingsChoices) *SettingsState {
	if !slices.Contains(choices.AudioInputs, current.AudioInput) {
		current.AudioInput = ""
	}
	if !slices.Contains(choices.VideoInputs, current.VideoInput) {
		current.VideoInput = ""
	}
	s := &SettingsState{original: current, edited: current, width: ModalWidthWide}

	themes := make([]huh.Option[string], len(choices.Themes))
	for i, c := range choices.Themes {
		themes[i] = huh.NewOption(c.Name, c.Key)
	}

	general := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(themes...).
			Value(&s.edited.Theme),
		huh.NewConfirm().
			Title("Desktop notifications").
			Description("For calls and contact requests").
			Affirmative("On").
			Negative("Off").
			Value(&s.edited.Notifications),
	)
	calls := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Audio input").
			Options(deviceOptions(choices.AudioInputs)...).
			Value(&s.edited.AudioInput),
		huh.NewSelect[string]().
			Title("Video input").
			Options(deviceOptions(choices.VideoInputs)...).
			Value(&s.edited.VideoInput),
	).Title("Calls")

	s.form = newForm(s.formWidth(), general, calls).WithLayout(huh.LayoutStack)
	return s
}
