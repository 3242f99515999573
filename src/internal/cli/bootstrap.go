// FILE: eventweaver/src/internal/cli/bootstrap.go
package cli

import (
	"fmt"

	"eventweaver/src/internal/config"

	"github.com/lixenwraith/log"
)

// initializeLogger sets up the logger from the configuration and the
// global flags. Quiet mode silences every output path.
func initializeLogger(cfg *config.Config, opts *RootOptions) (*log.Logger, error) {
	logger := log.NewLogger()

	var configArgs []string

	if opts.Quiet {
		// In quiet mode, disable ALL logging output
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_console=false",
			"level=255")

		if err := logger.ApplyConfigString(configArgs...); err != nil {
			return logger, err
		}
		return logger, logger.Start()
	}

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	levelValue, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}
	configArgs = append(configArgs, fmt.Sprintf("level=%d", levelValue))

	switch cfg.Logging.Output {
	case "none":
		configArgs = append(configArgs, "disable_file=true", "enable_console=false")

	case "stdout":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_console=true",
			"console_target=stdout")

	case "stderr":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_console=true",
			"console_target=stderr")

	case "file":
		configArgs = append(configArgs, "enable_console=false")
		if cfg.Logging.File != nil {
			configArgs = append(configArgs,
				fmt.Sprintf("directory=%s", cfg.Logging.File.Directory),
				fmt.Sprintf("name=%s", cfg.Logging.File.Name),
				fmt.Sprintf("max_size_mb=%d", cfg.Logging.File.MaxSizeMB),
				fmt.Sprintf("max_total_size_mb=%d", cfg.Logging.File.MaxTotalSizeMB))

			if cfg.Logging.File.RetentionHours > 0 {
				configArgs = append(configArgs,
					fmt.Sprintf("retention_period_hrs=%.1f", cfg.Logging.File.RetentionHours))
			}
		}

	default:
		return nil, fmt.Errorf("invalid log output mode: %s", cfg.Logging.Output)
	}

	if err := logger.ApplyConfigString(configArgs...); err != nil {
		return logger, err
	}
	return logger, logger.Start()
}

func parseLogLevel(level string) (int, error) {
	switch level {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	}
	return 0, fmt.Errorf("invalid log level: %s", level)
}
