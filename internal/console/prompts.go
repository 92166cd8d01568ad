package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mlorenzo/librarian/internal/entities"
)

// ErrTooManyAttempts is reported when a bounded re-prompt loop runs out of
// attempts without receiving valid input.
var ErrTooManyAttempts = errors.New("too many invalid attempts")

// errInputClosed is reported when stdin is exhausted mid-dialog.
var errInputClosed = errors.New("input closed")

// prompter reads and validates console entries. Re-prompting for malformed
// input is an explicit loop here; the core only validates and returns typed
// errors.
type prompter struct {
	in         *bufio.Scanner
	out        io.Writer
	maxRetries int
}

func newPrompter(in io.Reader, out io.Writer, maxRetries int) *prompter {
	return &prompter{
		in:         bufio.NewScanner(in),
		out:        out,
		maxRetries: maxRetries,
	}
}

func (p *prompter) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *prompter) println(args ...interface{}) {
	fmt.Fprintln(p.out, args...)
}

func (p *prompter) separator() {
	fmt.Fprintln(p.out, strings.Repeat("-", 72))
}

func (p *prompter) readLine(prompt string) (string, error) {
	p.printf("%s", prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// retry runs read until it yields a value, the retry budget runs out, or the
// input stream ends.
func (p *prompter) retry(read func() (bool, error)) error {
	for attempt := 0; p.maxRetries == 0 || attempt < p.maxRetries; attempt++ {
		done, err := read()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return ErrTooManyAttempts
}

// readInt prompts until a whole number is entered.
func (p *prompter) readInt(prompt string) (int, error) {
	var value int
	err := p.retry(func() (bool, error) {
		line, err := p.readLine(prompt)
		if err != nil {
			return false, err
		}
		value, err = strconv.Atoi(line)
		if err != nil {
			p.println("Invalid entry, a whole number is required.")
			return false, nil
		}
		return true, nil
	})
	return value, err
}

// readID prompts until a positive id is entered.
func (p *prompter) readID(prompt string) (uint, error) {
	var id uint
	err := p.retry(func() (bool, error) {
		n, err := p.readInt(prompt)
		if err != nil {
			return false, err
		}
		if n <= 0 {
			p.println("Invalid entry, an ID must be a positive number.")
			return false, nil
		}
		id = uint(n)
		return true, nil
	})
	return id, err
}

// readDate prompts until a valid DD/MM/YYYY date is entered.
func (p *prompter) readDate(prompt string) (time.Time, error) {
	var date time.Time
	err := p.retry(func() (bool, error) {
		line, err := p.readLine(prompt + " (DD/MM/YYYY): ")
		if err != nil {
			return false, err
		}
		date, err = entities.ParseDate(line)
		if err != nil {
			p.println("The date format is not valid, please try again.")
			return false, nil
		}
		return true, nil
	})
	return date, err
}

// readEmail prompts until a valid e-mail address is entered.
func (p *prompter) readEmail(prompt string) (string, error) {
	var email string
	err := p.retry(func() (bool, error) {
		line, err := p.readLine(prompt)
		if err != nil {
			return false, err
		}
		if err := entities.ValidateEmail(line); err != nil {
			p.println("The e-mail address is not valid, please try again.")
			return false, nil
		}
		email = line
		return true, nil
	})
	return email, err
}

// askYesNo asks a Y/N question. Any answer other than Y counts as no, the
// way the original dialogs treated unexpected entries.
func (p *prompter) askYesNo(prompt string) (bool, error) {
	line, err := p.readLine(prompt + " (Y/N): ")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(line, "y"), nil
}
