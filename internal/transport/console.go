package transport

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	messageStyle = lipgloss.NewStyle().
			Padding(0, 2)
)

// Console chat identity; every console session is the same private chat.
const (
	ConsoleChatID int64 = 1
	ConsoleUserID int64 = 1
)

// Console is a local chat loop standing in for a real messaging network:
// outbound messages print to the terminal, inbound lines become command and
// text events, and presented options become a select prompt on the next turn.
type Console struct {
	handler InboundHandler
	pending chan []Option
}

func NewConsole(handler InboundHandler) *Console {
	return &Console{
		handler: handler,
		pending: make(chan []Option, 1),
	}
}

func (c *Console) SendText(_ context.Context, _ int64, text string) error {
	fmt.Println(botStyle.Render("fitbot"))
	fmt.Println(messageStyle.Render(text))
	return nil
}

func (c *Console) PresentOptions(ctx context.Context, chatID int64, prompt string, options []Option) error {
	if err := c.SendText(ctx, chatID, prompt); err != nil {
		return err
	}
	select {
	case c.pending <- options:
	default:
		// A newer prompt supersedes an unanswered one.
		<-c.pending
		c.pending <- options
	}
	return nil
}

// Run reads user turns until the context is cancelled. After each inbound
// event it briefly waits for the dispatcher to present options so selection
// prompts appear on the turn they belong to.
func (c *Console) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		select {
		case options := <-c.pending:
			value, err := c.selectOption(options)
			if err != nil {
				return err
			}
			c.handler.HandleSelection(ConsoleChatID, ConsoleUserID, true, value)
		default:
			line, err := c.readLine()
			if err != nil {
				return err
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if strings.HasPrefix(line, "/") {
				name, args, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
				c.handler.HandleCommand(ConsoleChatID, ConsoleUserID, true, name, strings.TrimSpace(args))
			} else {
				c.handler.HandleText(ConsoleChatID, ConsoleUserID, true, line)
			}
		}

		// Give the single-threaded dispatcher a beat to react before the
		// next read; option prompts land in c.pending.
		time.Sleep(150 * time.Millisecond)
	}
}

func (c *Console) readLine() (string, error) {
	var line string
	input := huh.NewInput().
		Title("you").
		Placeholder("message or /command").
		Value(&line)
	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", err
	}
	return line, nil
}

func (c *Console) selectOption(options []Option) (string, error) {
	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt.Label, opt.Value)
	}

	var value string
	sel := huh.NewSelect[string]().
		Title("choose").
		Options(huhOptions...).
		Value(&value)
	if err := huh.NewForm(huh.NewGroup(sel)).Run(); err != nil {
		return "", err
	}
	return value, nil
}
