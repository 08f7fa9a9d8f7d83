package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

const helpText = `Available commands:
  list | l                      list prompts
  search <text>                 find prompts by title or content
  show <id>                     show one prompt with its notes
  add                           create a prompt
  delete <id>                   delete a prompt
  rate <id> <1-5>               rate a prompt
  note <id> [text]              add a note
  editnote <id> <noteId> [text] edit a note
  delnote <id> <noteId>         delete a note
  import [path]                 merge prompts from a JSON export
  export [json|yaml]            export all prompts
  status                        show storage status
  exit | quit                   leave the program`

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Rate(ctx context.Context, args []string) error
	Note(ctx context.Context, args []string) error
	EditNote(ctx context.Context, args []string) error
	DeleteNote(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Status(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The first token is the command, the rest are its arguments; handlers prompt
// for anything missing through the same reader.
//
// promptFn returns the prompt to print before each read; an empty prompt
// prints nothing, which keeps piped sessions quiet.
//
// Handler errors are reported and the loop continues. It exits on EOF, on
// "exit"/"quit", or when ctx is done.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		if p := promptFn(); p != "" {
			printlnFn(p)
		}

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "search":
			cmdErr = a.Search(ctx, args)

		case "show":
			cmdErr = a.Show(ctx, args)

		case "add":
			cmdErr = a.Add(ctx, args)

		case "delete":
			cmdErr = a.Delete(ctx, args)

		case "rate":
			cmdErr = a.Rate(ctx, args)

		case "note":
			cmdErr = a.Note(ctx, args)

		case "editnote":
			cmdErr = a.EditNote(ctx, args)

		case "delnote":
			cmdErr = a.DeleteNote(ctx, args)

		case "import":
			cmdErr = a.Import(ctx, args)

		case "export":
			cmdErr = a.Export(ctx, args)

		case "status":
			cmdErr = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd, "(type 'help' for commands)")
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}
