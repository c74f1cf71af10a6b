package cli

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/mkovach/crewboard/internal/board"
	"github.com/mkovach/crewboard/internal/domain"
	"github.com/mkovach/crewboard/internal/protocol"
)

// newShiftFormView builds the shift detail editor form over a board.Editor.
// The same form serves create and edit; on save the editor validates the
// window and emits the 2004/2005 command through the dispatcher.
func newShiftFormView(state *SharedState, editor *board.Editor) View {
	jobID := editor.JobID
	start := protocol.FormatTime(editor.Start)
	end := protocol.FormatTime(editor.End)
	po := editor.ClientPONumber
	instructions := editor.SpecialInstructions

	counts := make(map[domain.Role]*string, len(domain.AllRoles))
	for _, role := range domain.AllRoles {
		s := strconv.Itoa(editor.Requirements[role])
		counts[role] = &s
	}

	jobOptions := []huh.Option[string]{huh.NewOption("(no job)", "")}
	for i := range state.Session.Jobs {
		j := &state.Session.Jobs[i]
		jobOptions = append(jobOptions, huh.NewOption(j.Label(), j.ID))
	}

	roleGroup := make([]huh.Field, 0, len(domain.AllRoles))
	for _, role := range domain.AllRoles {
		roleGroup = append(roleGroup, huh.NewInput().
			Title(string(role)+" required").
			Placeholder("0").
			Value(counts[role]).
			Validate(validateNonNegativeInt))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Job").
				Options(jobOptions...).
				Value(&jobID),
			huh.NewInput().
				Title("Start (YYYY-MM-DDTHH:MM:SS)").
				Value(&start).
				Validate(validateDatetime),
			huh.NewInput().
				Title("End (YYYY-MM-DDTHH:MM:SS)").
				Value(&end).
				Validate(validateDatetime),
		),
		huh.NewGroup(roleGroup...),
		huh.NewGroup(
			huh.NewInput().
				Title("Client PO number (optional)").
				Value(&po),
			huh.NewInput().
				Title("Special instructions (optional)").
				Value(&instructions),
		),
	).WithTheme(crewHuhTheme()).WithShowHelp(false)

	loc := state.App.Loc
	dispatcher := state.App.Dispatcher

	done := func() tea.Cmd {
		return func() tea.Msg {
			editor.JobID = jobID
			if t, err := protocol.ParseTime(start, loc); err == nil {
				editor.Start = t
			}
			if t, err := protocol.ParseTime(end, loc); err == nil {
				editor.End = t
			}
			for _, role := range domain.AllRoles {
				if err := editor.SetRequirement(role, parseCount(*counts[role], 0)); err != nil {
					return bannerMsg{text: err.Error(), isErr: true}
				}
			}
			editor.ClientPONumber = po
			editor.SpecialInstructions = instructions

			cmd, err := editor.SaveCommand()
			if err != nil {
				return bannerMsg{text: err.Error(), isErr: true}
			}
			if err := dispatcher.Dispatch(cmd); err != nil {
				return bannerMsg{text: err.Error(), isErr: true}
			}
			return bannerMsg{text: "saving shift…"}
		}
	}

	title := "New Shift"
	if editor.Mode() == board.EditorEdit {
		title = "Edit Shift"
	}
	return newWizardView(state, title, form, done)
}

// startAssignWizard walks worker then role selection and dispatches the
// assign command. The pool excludes workers already on the roster.
func startAssignWizard(state *SharedState, sh *domain.Shift) tea.Cmd {
	editor := board.NewEditEditor(sh)
	pool := editor.AssignablePool(state.Session.Workers)
	if len(pool) == 0 {
		return showBanner("no assignable workers", true)
	}

	workerID := pool[0].ID
	role := string(pool[0].DefaultRole())

	workerOptions := make([]huh.Option[string], 0, len(pool))
	for i := range pool {
		workerOptions = append(workerOptions, huh.NewOption(pool[i].Name, pool[i].ID))
	}
	roleOptions := make([]huh.Option[string], 0, len(domain.AllRoles))
	for _, r := range domain.AllRoles {
		roleOptions = append(roleOptions, huh.NewOption(string(r), string(r)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Assign which worker?").
				Options(workerOptions...).
				Value(&workerID),
			huh.NewSelect[string]().
				Title("As role").
				Options(roleOptions...).
				Value(&role),
		),
	).WithTheme(crewHuhTheme()).WithShowHelp(false)

	dispatcher := state.App.Dispatcher
	done := func() tea.Cmd {
		return func() tea.Msg {
			cmd, err := editor.AssignCommand(workerID, domain.Role(role))
			if err != nil {
				return bannerMsg{text: err.Error(), isErr: true}
			}
			if err := dispatcher.Dispatch(cmd); err != nil {
				return bannerMsg{text: err.Error(), isErr: true}
			}
			return bannerMsg{text: "assigning…"}
		}
	}
	return startWizardCmd(state, "Assign Worker", form, done)
}

// startUnassignWizard picks a roster entry and dispatches the unassign.
func startUnassignWizard(state *SharedState, sh *domain.Shift) tea.Cmd {
	editor := board.NewEditEditor(sh)
	roster := editor.Roster()
	if len(roster) == 0 {
		return showBanner("no workers assigned", true)
	}

	workerID := roster[0].UserID
	roleByWorker := make(map[string]domain.Role, len(roster))
	options := make([]huh.Option[string], 0, len(roster))
	for _, a := range roster {
		roleByWorker[a.UserID] = a.RoleAssigned
		options = append(options, huh.NewOption(a.Name+" ("+string(a.RoleAssigned)+")", a.UserID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Remove which worker?").
				Options(options...).
				Value(&workerID),
		),
	).WithTheme(crewHuhTheme()).WithShowHelp(false)

	dispatcher := state.App.Dispatcher
	done := func() tea.Cmd {
		return func() tea.Msg {
			cmd, err := editor.UnassignCommand(workerID, roleByWorker[workerID])
			if err != nil {
				return bannerMsg{text: err.Error(), isErr: true}
			}
			if err := dispatcher.Dispatch(cmd); err != nil {
				return bannerMsg{text: err.Error(), isErr: true}
			}
			return bannerMsg{text: "unassigning…"}
		}
	}
	return startWizardCmd(state, "Unassign Worker", form, done)
}

// startDeleteWizard confirms and dispatches the delete. There is no undo.
func startDeleteWizard(state *SharedState, sh *domain.Shift) tea.Cmd {
	editor := board.NewEditEditor(sh)
	confirmed := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete this shift? This cannot be undone.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed),
		),
	).WithTheme(crewHuhTheme()).WithShowHelp(false)

	dispatcher := state.App.Dispatcher
	done := func() tea.Cmd {
		return func() tea.Msg {
			if !confirmed {
				return nil
			}
			cmd, err := editor.DeleteCommand()
			if err != nil {
				return bannerMsg{text: err.Error(), isErr: true}
			}
			if err := dispatcher.Dispatch(cmd); err != nil {
				return bannerMsg{text: err.Error(), isErr: true}
			}
			return bannerMsg{text: "deleting…"}
		}
	}
	return startWizardCmd(state, "Delete Shift", form, done)
}
