// Command toolrun answers a prompt by letting an LLM call tools exposed by
// an MCP server.
//
// Usage:
//
//	GEMINI_API_KEY=gk-...    toolrun [flags]
//	ANTHROPIC_API_KEY=sk-... toolrun [flags]
//
// Flags:
//
//	-provider string    Provider: gemini, anthropic (auto-detected from env vars if omitted)
//	-model string       Model ID (default: provider default)
//	-api-key string     API key (overrides provider's env var)
//	-server string      MCP server: command line, stdio://, sse://, http(s):// or https+stream:// URL
//	-max-turns int      Maximum tool rounds per prompt (default 5)
//	-tools string       Comma-separated glob patterns selecting tools (default: all)
//	-p string           Run this prompt without the interactive form
//	-transcript string  Write the transcript of each run to this JSON file
//	-log string         Write logs to this file (default: discard)
//	-log-level string   Log level (default INFO)
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/fwojciec/toolrun"
	"github.com/fwojciec/toolrun/agent"
	bt "github.com/fwojciec/toolrun/bubbletea"
	"github.com/fwojciec/toolrun/console"
	trjson "github.com/fwojciec/toolrun/json"
	"github.com/fwojciec/toolrun/mcp"
)

const defaultServer = "npx -y @openbnb/mcp-server-airbnb --ignore-robots-txt"

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "toolrun: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		providerFlag = flag.String("provider", "", "Provider: gemini, anthropic (auto-detected from env vars if omitted)")
		model        = flag.String("model", "", "Model ID (provider-specific)")
		apiKey       = flag.String("api-key", "", "API key (overrides provider's env var)")
		server       = flag.String("server", defaultServer, "MCP server command line or URL")
		maxTurns     = flag.Int("max-turns", agent.DefaultMaxToolTurns, "Maximum tool rounds per prompt")
		tools        = flag.String("tools", "", "Comma-separated glob patterns selecting tools")
		prompt       = flag.String("p", "", "Run this prompt without the interactive form")
		transcript   = flag.String("transcript", "", "Write the transcript of each run to this JSON file")
		logPath      = flag.String("log", "", "Write logs to this file")
		logLevel     = flag.String("log-level", "INFO", "Log level: CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG, TRACE")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := resolveConfig(*providerFlag, *apiKey, os.Getenv("ANTHROPIC_API_KEY"), os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		return err
	}

	logOut, closeLog, err := setupLogging(*logPath, *logLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := newModelClient(ctx, cfg)
	if err != nil {
		return err
	}

	// Server stderr shares the log destination so it never paints over the form.
	provider := mcp.New(*server, mcp.WithClientInfo("toolrun", version), mcp.WithStderr(logOut))

	loopOpts := []agent.Option{
		agent.WithMaxToolTurns(*maxTurns),
		agent.WithModel(*model),
		agent.WithToolFilter(parseToolPatterns(*tools)...),
	}

	runPrompt := func(ctx context.Context, prompt string, n toolrun.Notifier) (string, error) {
		loop := agent.New(client, append(loopOpts, agent.WithNotifier(n))...)
		res, err := agent.NewRunner(provider, loop, n).RunResult(ctx, prompt)
		if err != nil {
			return "", err
		}
		if *transcript != "" {
			rec := trjson.Record{
				Provider:  cfg.name,
				Model:     *model,
				CreatedAt: time.Now().UTC(),
				ToolTurns: res.ToolTurns,
				Exhausted: res.Exhausted,
				Turns:     res.Transcript,
			}
			if err := trjson.Save(*transcript, rec); err != nil {
				return "", errors.Wrap(err, "save transcript")
			}
		}
		return res.Text(), nil
	}

	if *prompt != "" {
		_, err := runPrompt(ctx, *prompt, console.New(os.Stdout))
		return err
	}

	if err := bt.Run(ctx, bt.New(runPrompt, toolrun.DefaultTheme())); err != nil {
		return errors.Wrap(err, "TUI")
	}
	return nil
}

// setupLogging points xlog at the -log file, or discards output when no
// file is given. The returned writer also receives MCP server stderr.
func setupLogging(path, level string) (io.Writer, func(), error) {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return nil, nil, err
	}
	var (
		out     io.Writer = io.Discard
		closeFn           = func() {}
	)
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open log file")
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}
	xlog.SetFormatter(xlog.NewStringFormatter(out))
	xlog.SetGlobalLogLevel(lvl)
	return out, closeFn, nil
}
