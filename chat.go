package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const chatPrompt = "> "

// runChat holds a conversation over a line-oriented stream. Blank lines
// are ignored. It returns when the responder ends the session or the
// input runs out.
func runChat(in io.Reader, out io.Writer, responder *Responder) error {
	if _, err := fmt.Fprintln(out, responder.Greeting()); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		if _, err := fmt.Fprint(out, chatPrompt); err != nil {
			return err
		}
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		reply := responder.Respond(line)
		if _, err := fmt.Fprintln(out, reply.Text); err != nil {
			return err
		}
		if reply.EndSession {
			return nil
		}
	}
}
