package config

import "flag"

// parseFlags defines and parses CLI flags. Flags override everything.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("rd", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.SaveFile, "file", cfg.SaveFile, "Path to reminder file")
	fs.StringVar(&cfg.DefaultTime, "default-time", cfg.DefaultTime, "Time of day for due dates without @ (e.g. 8am, 17)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")

	return fs.Parse(args)
}
