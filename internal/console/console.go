package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"bacbo-live-client/internal/models"
	"bacbo-live-client/internal/services"
)

// BoardHistory reads rounds back from a shared board.
type BoardHistory interface {
	GetRoundHistory(board string, limit int64) ([]*models.RoundRecord, error)
}

// Console reads results line by line and submits each one.
type Console struct {
	Submitter *services.Submitter
	History   *services.History
	Board     BoardHistory
	BoardName string
	BaseURL   string
	In        io.Reader
	Out       io.Writer

	mu      sync.Mutex
	pending sync.WaitGroup
}

func New(submitter *services.Submitter, history *services.History) *Console {
	return &Console{Submitter: submitter, History: history, In: os.Stdin, Out: os.Stdout}
}

// Run loops until input ends, ctx is done or /exit is entered. It waits for
// any /async submissions before returning.
func (c *Console) Run(ctx context.Context) error {
	if c.In == nil {
		c.In = os.Stdin
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	defer c.pending.Wait()

	c.locked(func() { banner(c.Out, c.BaseURL) })

	lines := make(chan string)
	scanErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		c.locked(func() { fmt.Fprint(c.Out, "> ") })

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			select {
			case err := <-scanErr:
				return err
			default:
				return nil
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if c.handleCommand(ctx, line) {
				return nil
			}
			continue
		}
		c.submit(ctx, line)
	}
}

// Wait blocks until every /async submission has finished.
func (c *Console) Wait() {
	c.pending.Wait()
}

func (c *Console) handleCommand(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	cmd := strings.TrimPrefix(fields[0], "/")
	args := strings.TrimSpace(strings.TrimPrefix(line, "/"+cmd))

	switch cmd {
	case "exit", "quit":
		return true
	case "help":
		c.locked(func() { help(c.Out) })
	case "panel":
		texts := c.Submitter.Panel().Snapshot()
		c.locked(func() { panel(c.Out, texts) })
	case "history":
		c.showHistory(args)
	case "tally":
		if c.History == nil {
			c.locked(func() { info(c.Out, "history is disabled") })
			return false
		}
		counts := c.History.Tally()
		c.locked(func() { tally(c.Out, counts) })
	case "async":
		if args == "" {
			c.locked(func() { info(c.Out, "usage: /async <result>") })
			return false
		}
		c.submitAsync(ctx, args)
	default:
		c.locked(func() { info(c.Out, fmt.Sprintf("unknown command: /%s", cmd)) })
	}
	return false
}

func (c *Console) submit(ctx context.Context, input string) {
	result := models.ParseResult(input)
	if err := c.Submitter.Submit(ctx, result); err != nil {
		c.locked(func() { printError(c.Out, err) })
	}
}

func (c *Console) submitAsync(ctx context.Context, input string) {
	result := models.ParseResult(input)
	done := c.Submitter.SubmitAsync(ctx, result)

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		err := <-done
		c.locked(func() {
			if err != nil {
				printError(c.Out, fmt.Errorf("%s: %w", result, err))
				return
			}
			info(c.Out, fmt.Sprintf("%s applied", result))
		})
	}()
}

func (c *Console) showHistory(args string) {
	limit := int64(0)
	if args != "" {
		n, err := strconv.ParseInt(args, 10, 64)
		if err != nil {
			c.locked(func() { printError(c.Out, err) })
			return
		}
		limit = n
	}

	if c.Board != nil {
		records, err := c.Board.GetRoundHistory(c.BoardName, limit)
		c.locked(func() {
			if err != nil {
				printError(c.Out, err)
				return
			}
			history(c.Out, records)
		})
		return
	}

	if c.History == nil {
		c.locked(func() { info(c.Out, "history is disabled") })
		return
	}
	records := c.History.Records()
	if limit > 0 && int64(len(records)) > limit {
		records = records[int64(len(records))-limit:]
	}
	c.locked(func() { history(c.Out, records) })
}

func (c *Console) locked(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}
