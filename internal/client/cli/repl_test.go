package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	failOn   string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	if name == f.failOn {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register")
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Profile(ctx context.Context) error    { return f.record("profile") }
func (f *fakeExec) SetProfile(ctx context.Context) error { return f.record("setprofile") }
func (f *fakeExec) Add(ctx context.Context) error        { return f.record("add") }
func (f *fakeExec) List(ctx context.Context) error       { return f.record("list") }
func (f *fakeExec) Update(ctx context.Context) error     { return f.record("update") }
func (f *fakeExec) Delete(ctx context.Context) error     { return f.record("delete") }
func (f *fakeExec) Summary(ctx context.Context) error    { return f.record("summary") }
func (f *fakeExec) Project(ctx context.Context) error    { return f.record("project") }

func silence(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		printed = append(printed, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &printed
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silence(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"list",
		"login",
		"help",
		"add",
		"l",
		"update",
		"delete",
		"profile",
		"setprofile",
		"summary",
		"project",
		"foobar",
		"logout",
		"exit",
		"list",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(input))

	want := []string{"login", "add", "list", "update", "delete", "profile", "setprofile", "summary", "project", "logout"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
}

func TestRunREPL_RequiresLogin(t *testing.T) {
	printed := silence(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("summary\nproject\n")))

	if len(exec.calls) != 1 || exec.calls[0] != "project" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}

	found := false
	for _, p := range *printed {
		if p == "Please login first" {
			found = true
		}
	}
	if !found {
		t.Fatalf("login hint not printed: %v", *printed)
	}
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	printed := silence(t)

	exec := &fakeExec{loggedIn: true, failOn: "list"}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("list\nprofile")))

	if len(exec.calls) != 2 {
		t.Fatalf("expected both commands to run, got %v", exec.calls)
	}

	found := false
	for _, p := range *printed {
		if p == "Error: boom" {
			found = true
		}
	}
	if !found {
		t.Fatalf("error not printed: %v", *printed)
	}
}
