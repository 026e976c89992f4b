// Package session runs the interactive browse loop: it reads one command per
// line and dispatches it to the view controller.
package session

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pokedex-cli/pokedex/pkg/models"
	"github.com/pokedex-cli/pokedex/pkg/render"
	"github.com/pokedex-cli/pokedex/pkg/view"
)

// Controller is the set of user actions a session can trigger.
type Controller interface {
	Search(ctx context.Context, query string) error
	LoadInitial(ctx context.Context) error
	OpenDetail(id int) error
	ToggleFavorite(id int) error
	ShowFavorites(ctx context.Context) error
	State() models.ViewState
}

// Printer writes plain lines to the user.
type Printer interface {
	Println(s string)
}

// Session reads commands and drives a Controller.
type Session struct {
	ctrl Controller
	out  Printer
	loc  *render.Localization
	log  *zap.Logger
}

// New creates a Session.
func New(ctrl Controller, out Printer, loc *render.Localization, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{ctrl: ctrl, out: out, loc: loc, log: log}
}

// Run reads commands from r line-by-line until r is exhausted, a quit
// command is read, or ctx is cancelled.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := s.dispatch(ctx, line); quit {
			return nil
		}
	}
	return scanner.Err()
}

// dispatch runs one command line and reports whether the session should end.
func (s *Session) dispatch(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	explicit := strings.HasPrefix(cmd, "/")
	cmd = strings.ToLower(strings.TrimPrefix(cmd, "/"))

	var err error
	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		s.out.Println(s.loc.Text(render.KeyHelp))
	case "search":
		err = s.ctrl.Search(ctx, arg)
	case "load":
		err = s.ctrl.LoadInitial(ctx)
	case "favorites", "favs":
		err = s.ctrl.ShowFavorites(ctx)
	case "open":
		id, ok := s.parseID(arg)
		if !ok {
			break
		}
		err = s.ctrl.OpenDetail(id)
		if errors.Is(err, view.ErrInvalidTransition) {
			s.out.Println(s.loc.Text(render.KeyNothingToOpen))
		}
	case "fav":
		id, ok := s.currentOr(arg)
		if !ok {
			break
		}
		err = s.ctrl.ToggleFavorite(id)
	default:
		if explicit {
			s.out.Println(s.loc.Text(render.KeyUnknownCommand, cmd))
			return false
		}
		// Anything that is not a command is typed into the search box.
		err = s.ctrl.Search(ctx, line)
	}

	// The controller has already shown the failure; keep it in the log only.
	if err != nil {
		s.log.Debug("command failed", zap.String("command", cmd), zap.Error(err))
	}
	return false
}

func (s *Session) parseID(arg string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil || id <= 0 {
		s.out.Println(s.loc.Text(render.KeyInvalidID, arg))
		return 0, false
	}
	return id, true
}

// currentOr resolves the id of a fav command; without an argument it is the
// record shown in the detail view.
func (s *Session) currentOr(arg string) (int, bool) {
	if arg == "" {
		if st := s.ctrl.State(); st.View == models.ViewDetail && st.Current != nil {
			return st.Current.ID, true
		}
	}
	return s.parseID(arg)
}
