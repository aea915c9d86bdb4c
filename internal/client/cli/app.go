package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/fintrack/internal/client/client"
	"github.com/dmitrijs2005/fintrack/internal/client/config"
	"github.com/dmitrijs2005/fintrack/internal/client/models"
)

// apiClient is the subset of client.HTTPClient the commands use.
type apiClient interface {
	SetToken(token string)
	Register(ctx context.Context, name, email string, password []byte) (*models.Session, error)
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	Profile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.Profile, error)
	ListExpenses(ctx context.Context) ([]models.Expense, error)
	CreateExpense(ctx context.Context, in models.ExpenseInput) (*models.Expense, error)
	UpdateExpense(ctx context.Context, id string, in models.ExpenseInput) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
}

type sessionStore interface {
	Save(sess *models.Session) error
	Load() (*models.Session, error)
	Clear() error
}

type App struct {
	api      apiClient
	sessions sessionStore
	session  *models.Session
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	store, err := client.NewSessionStore(c.SessionDir)
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}

	return newApp(client.NewHTTPClient(c.ServerURL, c.RequestTimeout), store, os.Stdin, os.Stdout), nil
}

func newApp(api apiClient, store sessionStore, in io.Reader, out io.Writer) *App {
	return &App{
		api:      api,
		sessions: store,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) getStatus() string {
	if a.session == nil {
		return ""
	}
	return fmt.Sprintf(" (%s)", a.session.User.Email)
}

// restoreSession picks up a saved, unexpired session.
func (a *App) restoreSession() {
	sess, err := a.sessions.Load()
	if err != nil {
		if !errors.Is(err, client.ErrNoSession) {
			fmt.Fprintln(a.out, "Could not read saved session:", err)
		}
		return
	}
	a.startSession(sess)
	fmt.Fprintf(a.out, "Welcome back, %s\n", sess.User.Name)
}

func (a *App) startSession(sess *models.Session) {
	a.session = sess
	a.api.SetToken(sess.Token)
}

func (a *App) endSession() {
	a.session = nil
	a.api.SetToken("")
	_ = a.sessions.Clear()
}

// handleAuthError drops the local session when the server no longer accepts
// its token.
func (a *App) handleAuthError(err error) error {
	if a.session != nil && errors.Is(err, client.ErrUnauthorized) {
		a.endSession()
		return errors.New("session expired, please login again")
	}
	if errors.Is(err, client.ErrUnavailable) {
		return client.ErrUnavailable
	}
	return err
}

// Root runs the interactive loop on the App's input until EOF or exit.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to FinTrack CLI (type 'help' for commands)")

	a.restoreSession()

	runREPL(ctx, a, a.getStatus, a.reader)
}
