package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	calls []string
	args  [][]string
	err   error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) List(ctx context.Context) error { return f.record("list", nil) }
func (f *fakeExec) Search(ctx context.Context, args []string) error {
	return f.record("search", args)
}
func (f *fakeExec) Show(ctx context.Context, args []string) error { return f.record("show", args) }
func (f *fakeExec) Add(ctx context.Context, args []string) error  { return f.record("add", args) }
func (f *fakeExec) Delete(ctx context.Context, args []string) error {
	return f.record("delete", args)
}
func (f *fakeExec) Rate(ctx context.Context, args []string) error { return f.record("rate", args) }
func (f *fakeExec) Note(ctx context.Context, args []string) error { return f.record("note", args) }
func (f *fakeExec) EditNote(ctx context.Context, args []string) error {
	return f.record("editnote", args)
}
func (f *fakeExec) DeleteNote(ctx context.Context, args []string) error {
	return f.record("delnote", args)
}
func (f *fakeExec) Import(ctx context.Context, args []string) error {
	return f.record("import", args)
}
func (f *fakeExec) Export(ctx context.Context, args []string) error {
	return f.record("export", args)
}
func (f *fakeExec) Status(ctx context.Context) error { return f.record("status", nil) }

// capturePrint replaces printlnFn for the test and returns the printed lines.
func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrint(t)

	input := strings.Join([]string{
		"help",
		"l",
		"list",
		"search blog outline",
		"show abc",
		"add",
		"delete abc",
		"rate abc 4",
		"note abc try GPT-4",
		"editnote abc n1 fixed",
		"delnote abc n1",
		"import ./in.json",
		"export yaml",
		"status",
		"",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr(input))

	require.Equal(t, []string{
		"list", "list", "search", "show", "add", "delete", "rate",
		"note", "editnote", "delnote", "import", "export", "status",
	}, exec.calls)
	require.Equal(t, []string{"blog", "outline"}, exec.args[2])
	require.Equal(t, []string{"abc", "4"}, exec.args[6])
	require.Equal(t, []string{"abc", "try", "GPT-4"}, exec.args[7])
}

func TestRunREPL_UnknownCommandAndQuit(t *testing.T) {
	lines := capturePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "pk> " }, rdr("foobar\nquit\n"))

	require.Empty(t, exec.calls)
	require.Contains(t, *lines, "Unknown command: foobar (type 'help' for commands)")
	require.Contains(t, *lines, "Bye!")
	require.Contains(t, *lines, "pk> ")
}

func TestRunREPL_ReportsErrorsAndContinues(t *testing.T) {
	lines := capturePrint(t)

	exec := &fakeExec{err: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("list\nstatus\n"))

	require.Equal(t, []string{"list", "status"}, exec.calls)
	require.Equal(t, []string{"Error: boom", "Error: boom"}, *lines)
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	capturePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("list"))
	require.Equal(t, []string{"list"}, exec.calls)
}

func TestRunREPL_StopsOnCanceledContext(t *testing.T) {
	capturePrint(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, rdr("list\n"))
	require.Empty(t, exec.calls)
}
