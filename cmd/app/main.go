package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"lux/internal/evaluator"
	"lux/internal/object"
	"lux/internal/repl"
	"lux/internal/runner"
	"lux/internal/util"
)

// Exit codes follow the sysexits convention: 65 for source that does not
// compile, 70 for a runtime error.
const (
	exitCompileError = 65
	exitRuntimeError = 70
)

var (
	// Version is stamped at build time.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
	help      bool
	version   bool
	// logging
	logLevel string
	logFile  string
	// config vars
	configPath string
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	flag.StringVar(&configPath, "config", "", "Path to a TOML configuration file (defaults to $LUXRC)")
	// log config
	flag.StringVar(&logLevel, "log-level", "error", "Log level: debug, info, warn, error")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
}

func main() {

	flag.Parse()

	config := loadConfiguration()

	loggerOptions := &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevelFromString(config.LogLevel),
	}
	logWriter := configureLogWriter(config.LogFile)
	defaultLogger := slog.New(slog.NewJSONHandler(logWriter, loggerOptions))
	slog.SetDefault(defaultLogger)

	if version {
		printVersion()
		return
	}

	if help {
		printHelp()
		return
	}

	if filename := flag.Arg(0); filename != "" {
		runFile(filename)
		return
	}

	repl.Start(os.Stdin, os.Stdout)
}

// loadConfiguration resolves settings in order: defaults, then the TOML
// file named by -config or $LUXRC, then any flags set on the command line.
func loadConfiguration() util.Configuration {
	config := util.Configuration{
		Version:   Version,
		BuildDate: BuildDate,
		Commit:    Commit,
		LogLevel:  logLevel,
		LogFile:   logFile,
	}

	path := configPath
	fromEnv := false
	if path == "" {
		path = os.Getenv("LUXRC")
		fromEnv = true
	}
	if path != "" {
		if err := util.LoadFile(path, &config); err != nil {
			if !fromEnv || !os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "failed to load config file '%s': %v\n", path, err)
			}
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			config.LogLevel = logLevel
		case "log-file":
			config.LogFile = logFile
		}
	})

	return config
}

func runFile(filename string) {
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read '%s': %v\n", filename, err)
		os.Exit(1)
	}

	interp := evaluator.New()
	result, ok := runner.Run(string(source), interp, os.Stderr)
	if !ok {
		os.Exit(exitCompileError)
	}
	if _, isErr := result.(*object.Error); isErr {
		os.Exit(exitRuntimeError)
	}
}

func configureLogWriter(logFile string) *os.File {
	var logWriter *os.File
	var err error
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", logFile, err)
			return os.Stderr
		}
		logWriter, err = os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", logFile, err)
			logWriter = os.Stderr
		}
	} else {
		logWriter = os.Stderr
	}
	return logWriter
}

func printVersion() {

	fmt.Printf("lux version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: lux [options] [filename]

Options:
  -config <path>     Path to a TOML configuration file. Defaults to $LUXRC.
  -help              Display this help information and exit.
  -version           Display version information and exit.
  -log-level <level> Set the log level: debug, info, warn, error. Default is 'error'.
  -log-file <path>   Specify a log file to write logs. Default is stderr.

Details:
This is the Lux programming language. Run a script by passing its path, or
start an interactive session by passing no file.

Examples:
  lux                           Start the REPL
  lux myfile.lux                Execute the provided Lux file
  lux -log-level=debug          Start with debug logging enabled

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, Version, BuildDate, Commit)
}

func logLevelFromString(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelError
	}
}
