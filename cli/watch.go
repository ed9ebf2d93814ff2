package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"shiftclock_backend/models"
	"shiftclock_backend/shift"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var watchCmd = LeafCommand{
	Use:   "watch",
	Short: "Show a live view of today's shift",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		out := cmd.OutOrStdout()
		if f, ok := out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runPlainWatch(ctx, out, sess)
		}
		return runWatch(commandContext(cmd), out, sess)
	},
}.Build()

// updateMsg carries a timer sample into the bubbletea loop.
type updateMsg shift.Update

// transitionMsg reports the outcome of a begin or end request.
type transitionMsg struct {
	snap shift.Snapshot
	err  error
}

type peersMsg struct {
	records []models.AttendanceRecord
	err     error
}

type watchModel struct {
	ctx     context.Context
	sess    *session
	updates <-chan shift.Update
	bar     progress.Model
	snap    shift.Snapshot
	peers   []models.AttendanceRecord
	busy    bool
	err     error
}

func newWatchModel(ctx context.Context, sess *session, snap shift.Snapshot, updates <-chan shift.Update) watchModel {
	return watchModel{
		ctx:     ctx,
		sess:    sess,
		updates: updates,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		snap:    snap,
	}
}

func waitForUpdate(updates <-chan shift.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return nil
		}
		return updateMsg(u)
	}
}

func (m watchModel) transition(fn func(context.Context) (shift.Snapshot, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		snap, err := fn(ctx)
		return transitionMsg{snap: snap, err: err}
	}
}

func (m watchModel) loadPeers() tea.Cmd {
	ctx, sess := m.ctx, m.sess
	return func() tea.Msg {
		records, err := sess.client.Records(ctx, models.RecordFilter{Date: sess.today()})
		return peersMsg{records: records, err: err}
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), m.loadPeers())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.snap = m.sess.ctrl.Snapshot()
		m.snap.Elapsed = msg.Elapsed
		m.snap.Percent = msg.Percent
		return m, waitForUpdate(m.updates)

	case transitionMsg:
		m.busy = false
		m.snap = msg.snap
		m.err = msg.err
		return m, m.loadPeers()

	case peersMsg:
		if msg.err == nil {
			m.peers = msg.records
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-4, 10), 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "b":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.err = nil
			return m, m.transition(m.sess.ctrl.BeginShift)
		case "e":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.err = nil
			return m, m.transition(m.sess.ctrl.EndShift)
		case "r":
			return m, m.loadPeers()
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder
	b.WriteString(Title("Shift clock") + "  " + Silent(m.snap.Date) + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", Silent("State:  "), stateLabel(m.snap.State)))
	roster := formatWindow(m.snap.Roster.ShiftStart, m.snap.Roster.ShiftEnd, m.sess.loc) + " " + m.snap.Roster.TaskNotes
	b.WriteString(fmt.Sprintf("%s  %s\n", Silent("Roster: "), roster))
	b.WriteString(fmt.Sprintf("%s  %s\n\n", Silent("Elapsed:"), Primary(m.snap.Elapsed)))
	b.WriteString(m.bar.ViewAs(m.snap.Percent/100) + "\n")

	if len(m.peers) > 0 {
		b.WriteString("\n")
		var peers strings.Builder
		printPeers(&peers, m.snap.Date, m.peers)
		b.WriteString(peers.String())
	}
	if m.err != nil {
		b.WriteString("\n" + Error(m.err.Error()) + "\n")
	}
	if m.busy {
		b.WriteString("\n" + Silent("working...") + "\n")
	}
	b.WriteString("\n" + Silent("b begin  e end  r refresh  q quit") + "\n")
	return b.String()
}

// subscribe forwards controller samples to a buffered channel so the timer
// goroutine never waits on the display.
func subscribe(ctrl *shift.Controller) (<-chan shift.Update, func()) {
	updates := make(chan shift.Update, 16)
	cancel := ctrl.Subscribe(func(u shift.Update) {
		select {
		case updates <- u:
		default:
		}
	})
	return updates, cancel
}

func runWatch(ctx context.Context, out io.Writer, sess *session) error {
	updates, cancel := subscribe(sess.ctrl)
	defer cancel()

	snap, err := sess.ctrl.Activate(ctx)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newWatchModel(ctx, sess, snap, updates), tea.WithOutput(out), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// runPlainWatch prints one line per sample until ctx is done or the shift
// is closed.
func runPlainWatch(ctx context.Context, out io.Writer, sess *session) error {
	updates, cancel := subscribe(sess.ctrl)
	defer cancel()

	snap, err := sess.ctrl.Activate(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "%s %s\n", snap.Date, snap.State)
	if snap.State == shift.NotStarted {
		_, _ = fmt.Fprintln(out, "shift not started")
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case u := <-updates:
			_, _ = fmt.Fprintf(out, "%s %s\n", u.Elapsed, formatPercent(u.Percent))
			if u.Final {
				return nil
			}
		}
	}
}
