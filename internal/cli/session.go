package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Session is the interactive shell around a Controller.
//
// Commands:
//
//	select <path>   choose the document to submit
//	redact          submit the selection to the service
//	download [dir]  save the produced file locally
//	status          redraw the current screen
//	health          ping the service
//	exit | quit     leave the shell
//
// One command executes at a time, so the prompt itself is the disabled
// submit control while a request is running.
type Session struct {
	ctrl    *Controller
	probe   ServiceProbe
	destDir string
	in      io.Reader
	out     io.Writer
}

func NewSession(ctrl *Controller, probe ServiceProbe, destDir string, in io.Reader, out io.Writer) *Session {
	return &Session{
		ctrl:    ctrl,
		probe:   probe,
		destDir: destDir,
		in:      in,
		out:     out,
	}
}

func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Secure PDF Redactor. Type 'help' to list commands.")

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "redact> ")

		if !scanner.Scan() {
			return scanner.Err()
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch cmd := parts[0]; cmd {
		case "help":
			fmt.Fprintln(s.out, "Available commands: select <path>, redact, download [dir], status, health, exit")

		case "select":
			if len(parts) < 2 {
				fmt.Fprintln(s.out, "usage: select <path>")
				continue
			}
			s.selectFile(strings.Join(parts[1:], " "))

		case "redact":
			// Show the in-flight frame before the blocking call settles.
			if st := s.ctrl.State(); st.Selected != "" {
				fmt.Fprintln(s.out, "Processing...")
			}
			s.ctrl.Submit(ctx)
			fmt.Fprint(s.out, Render(s.ctrl.State()))

		case "download":
			dir := s.destDir
			if len(parts) > 1 {
				dir = parts[1]
			}

			path, err := s.ctrl.Download(ctx, dir)
			if err != nil {
				fmt.Fprintln(s.out, "Download failed:", err)
				continue
			}
			fmt.Fprintln(s.out, "Saved to", path)

		case "status":
			fmt.Fprint(s.out, Render(s.ctrl.State()))

		case "health":
			if err := s.probe.Health(ctx); err != nil {
				fmt.Fprintln(s.out, "Service is unreachable:", err)
				continue
			}
			fmt.Fprintln(s.out, "Service is up.")

		case "exit", "quit":
			fmt.Fprintln(s.out, "Bye!")
			return nil

		default:
			fmt.Fprintln(s.out, "Unknown command:", cmd)
		}
	}
}

// selectFile plays the file picker: only paths that actually resolve to a
// file make it into the controller.
func (s *Session) selectFile(path string) {
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintln(s.out, "No such file:", path)
		return
	}

	if info.IsDir() {
		fmt.Fprintf(s.out, "%s is a directory\n", path)
		return
	}

	s.ctrl.Select(path)
	fmt.Fprint(s.out, Render(s.ctrl.State()))
}
