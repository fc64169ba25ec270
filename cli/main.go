package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"ytexport/config"
	"ytexport/export"
	ythttp "ytexport/http"
	"ytexport/internal/logging"
	"ytexport/youtube"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// app carries the process streams so commands can be driven from tests.
type app struct {
	in     *prompter
	out    io.Writer
	errOut io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := &app{in: newPrompter(stdin, stdout), out: stdout, errOut: stderr}

	if len(args) == 0 {
		return a.cmdExport(ctx, nil)
	}

	switch args[0] {
	case "export":
		return a.cmdExport(ctx, args[1:])
	case "info":
		return a.cmdInfo(ctx, args[1:])
	case "resolve":
		return a.cmdResolve(ctx, args[1:])
	case "help", "-h", "--help":
		a.printUsage()
		return nil
	default:
		// Bare flags or URL mean export
		return a.cmdExport(ctx, args)
	}
}

func (a *app) printUsage() {
	fmt.Fprintf(a.errOut, `ytexport - export a YouTube channel's videos to a spreadsheet

Usage:
  ytexport [export] [flags] [channel-url]   Export channel videos (prompts when no URL)
  ytexport info [flags] <channel-url>       Show channel information
  ytexport resolve [flags] <channel-url>    Print the channel ID for a URL
  ytexport help                             Show this help message

Examples:
  ytexport                                                  # Interactive
  ytexport https://www.youtube.com/@GoogleDevelopers        # Export latest 50 videos
  ytexport -max 0 -sort views -o top.csv <url>              # All uploads, by views, as CSV
  ytexport info https://www.youtube.com/c/GoogleDevelopers

Configuration is read from .env, ytexport.json and YTEXPORT_* variables.
The API key comes from YOUTUBE_API_KEY.

For help on specific command: ytexport <command> -h
`)
}

// commonFlags are shared by every command.
type commonFlags struct {
	configPath string
	logLevel   string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "Path to config file (default: ytexport.json)")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, or error")
}

// session is everything a command needs after configuration is loaded.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	client *youtube.Client
	close  func()
}

func (a *app) newSession(ctx context.Context, flags commonFlags, override func(*config.Config)) (*session, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.NewLogger(cfg.Log, a.errOut)
	if err != nil {
		return nil, err
	}
	logger, _ = logging.WithRunID(logger)

	httpCfg := ythttp.DefaultConfig()
	httpCfg.Timeout = cfg.RequestTimeout.D()

	pageDelay := cfg.PageDelay.D()
	if pageDelay == 0 {
		pageDelay = -1
	}

	client, err := youtube.NewClient(ctx, youtube.Config{
		APIKey:         cfg.APIKey,
		Endpoint:       cfg.Endpoint,
		HTTP:           httpCfg,
		DailyCallLimit: cfg.DailyCallLimit,
		PageDelay:      pageDelay,
		Logger:         logger,
	})
	if err != nil {
		logCloser.Close()
		return nil, err
	}

	return &session{
		cfg:    cfg,
		logger: logger,
		client: client,
		close: func() {
			client.Close()
			logCloser.Close()
		},
	}, nil
}

func (s *session) reportQuota() {
	q := s.client.Quota()
	s.logger.Info("api usage",
		slog.Int("calls", q.Used()),
		slog.Int("remaining", q.Remaining()),
		slog.Int("estimated_units", q.Units()))
}

func (a *app) cmdExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	var common commonFlags
	common.register(fs)
	maxVideos := fs.Int("max", -1, "Maximum videos to export, 0 = all (default from config: 50)")
	sortBy := fs.String("sort", "", "Sort order: date, views, or likes")
	output := fs.String("o", "", "Output file (default: youtube_data.xlsx)")
	format := fs.String("format", "", "Output format: xlsx, csv, or json (default: from file extension)")
	yes := fs.Bool("yes", false, "Do not ask for export confirmation")
	fs.Usage = func() {
		fmt.Fprintf(a.errOut, "Usage: ytexport export [flags] [channel-url]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	interactive := fs.NArg() == 0
	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("expected one channel URL, got %d arguments", fs.NArg())
	}

	s, err := a.newSession(ctx, common, func(c *config.Config) {
		if *maxVideos >= 0 {
			c.MaxVideos = *maxVideos
		}
		if *sortBy != "" {
			c.SortBy = *sortBy
		}
		if *output != "" {
			c.OutputFile = *output
		}
		if *format != "" {
			c.OutputFormat = *format
		}
	})
	if err != nil {
		return err
	}
	defer s.close()

	var channelURL string
	if interactive {
		fmt.Fprintln(a.out, "YouTube Channel Exporter")
		fmt.Fprintln(a.out, "==================================================")
		if channelURL, err = a.in.askRequired("Enter YouTube channel URL: "); err != nil {
			return err
		}
		if *maxVideos < 0 {
			prompt := fmt.Sprintf("Enter maximum number of videos to scrape (default %d): ", s.cfg.MaxVideos)
			if s.cfg.MaxVideos, err = a.in.askInt(prompt, s.cfg.MaxVideos); err != nil {
				return err
			}
		}
	} else {
		channelURL = fs.Arg(0)
	}

	if s.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RunTimeout.D())
		defer cancel()
	}

	result, err := s.client.ScrapeChannel(ctx, channelURL, youtube.CollectOptions{
		MaxResults: s.cfg.MaxVideos,
		Sort:       s.cfg.Sort(),
	})
	s.reportQuota()
	if err != nil {
		return err
	}

	if len(result.Videos) == 0 {
		fmt.Fprintln(a.out, "No videos found.")
		return nil
	}

	a.printSummary(result)

	path := s.cfg.OutputFile
	if interactive {
		fmt.Fprintf(a.out, "\n%s EXPORT OPTIONS %s\n", "====================", "====================")
		if !*yes {
			ok, err := a.in.askYesNo("Save data to Excel? (y/n): ")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(a.out, "Scraping completed!")
				return nil
			}
		}
		if path, err = a.in.ask(fmt.Sprintf("Enter filename (default: %s): ", path), path); err != nil {
			return err
		}
	}

	// An explicit format wins, otherwise Write infers it from path
	outFormat, _ := export.ParseFormat(s.cfg.OutputFormat)
	if err := export.Write(path, outFormat, &result.Channel, result.Videos); err != nil {
		return err
	}
	s.logger.Info("data saved", slog.String("path", path), slog.Int("videos", len(result.Videos)))
	fmt.Fprintf(a.out, "Saved %d videos to %s\n", len(result.Videos), path)
	return nil
}

// printSummary prints the channel header and the first rows of the export.
func (a *app) printSummary(result *youtube.ScrapeResult) {
	ch := result.Channel
	fmt.Fprintf(a.out, "\nChannel:      %s (%s)\n", ch.Name, ch.ID)
	fmt.Fprintf(a.out, "Subscribers:  %d\n", ch.SubscriberCount)
	fmt.Fprintf(a.out, "Videos:       %d collected of %d\n\n", len(result.Videos), ch.VideoCount)

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VIDEO ID\tTITLE\tMINUTES\tTYPE\tVIEWS\tUPLOADED")
	for i, v := range result.Videos {
		if i == 10 {
			fmt.Fprintf(w, "...\t(%d more)\t\t\t\t\n", len(result.Videos)-10)
			break
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%d\t%s\n",
			v.ID,
			truncate(v.Title, 50),
			v.DurationMinutes,
			v.VideoType,
			v.Views,
			v.UploadDate,
		)
	}
	w.Flush()
}

func (a *app) cmdInfo(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	var common commonFlags
	common.register(fs)
	fs.Usage = func() {
		fmt.Fprintf(a.errOut, "Usage: ytexport info [flags] <channel-url>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("missing channel-url")
	}

	s, err := a.newSession(ctx, common, nil)
	if err != nil {
		return err
	}
	defer s.close()

	id, err := s.client.ExtractChannelID(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	info, err := s.client.FetchChannelInfo(ctx, id)
	s.reportQuota()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Channel ID:\t%s\n", info.ID)
	fmt.Fprintf(w, "Name:\t%s\n", info.Name)
	fmt.Fprintf(w, "URL:\t%s\n", info.ChannelURL())
	fmt.Fprintf(w, "Custom URL:\t%s\n", info.CustomURL)
	fmt.Fprintf(w, "Subscribers:\t%d\n", info.SubscriberCount)
	fmt.Fprintf(w, "Videos:\t%d\n", info.VideoCount)
	fmt.Fprintf(w, "Views:\t%d\n", info.ViewCount)
	fmt.Fprintf(w, "Created:\t%s\n", info.CreatedDate)
	fmt.Fprintf(w, "Country:\t%s\n", info.Country)
	w.Flush()
	return nil
}

func (a *app) cmdResolve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	var common commonFlags
	common.register(fs)
	fs.Usage = func() {
		fmt.Fprintf(a.errOut, "Usage: ytexport resolve [flags] <channel-url>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("missing channel-url")
	}

	s, err := a.newSession(ctx, common, nil)
	if err != nil {
		return err
	}
	defer s.close()

	id, err := s.client.ExtractChannelID(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, id)
	return nil
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
