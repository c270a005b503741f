package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/threatops/surveyor/internal/model"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// surveyOptions is the per-run CLI surface: input mode, time window
// and output naming. Connection and upload settings live in appConfig.
type surveyOptions struct {
	DefFile string
	DefDir  string
	Query   string
	IOCFile string
	IOCType string
	Days    int
	Minutes int
	Prefix  string
}

// validate enforces the input-mode rules before any connection is made:
// exactly one mode, and --ioctype present iff --iocfile is.
func (o surveyOptions) validate() error {
	modes := 0
	for _, m := range []string{o.DefFile, o.DefDir, o.Query, o.IOCFile} {
		if m != "" {
			modes++
		}
	}
	if modes != 1 {
		return errors.New("exactly one of -deffile, -defdir, -query or -iocfile is required")
	}
	if o.IOCFile != "" && o.IOCType == "" {
		return errors.New("-iocfile requires -ioctype")
	}
	if o.IOCFile == "" && o.IOCType != "" {
		return errors.New("-ioctype is only valid with -iocfile")
	}
	if o.IOCType != "" && !model.ValidIOCType(o.IOCType) {
		return fmt.Errorf("invalid -ioctype %q (one of: ipaddr, domain, md5)", o.IOCType)
	}
	return nil
}

// outputFilename returns <prefix>-survey.csv, or survey.csv without a
// prefix.
func (o surveyOptions) outputFilename() string {
	if o.Prefix != "" {
		return o.Prefix + "-survey.csv"
	}
	return "survey.csv"
}

func main() {
	var (
		configPath  string
		showVersion bool
		opts        surveyOptions
		profile     string
		workers     int
		doUpload    bool
	)

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/surveyor/config.yml)")
	flag.BoolVar(&showVersion, "version", false, "print version information")

	flag.StringVar(&opts.DefFile, "deffile", "", "definition file to process (JSON or YAML)")
	flag.StringVar(&opts.DefDir, "defdir", "", "directory containing definition files (searched recursively)")
	flag.StringVar(&opts.Query, "query", "", "a single process search query to execute")
	flag.StringVar(&opts.IOCFile, "iocfile", "", "IOC file to process, one IOC per line (requires -ioctype)")
	flag.StringVar(&opts.IOCType, "ioctype", "", "one of: ipaddr, domain, md5")
	flag.IntVar(&opts.Days, "days", 0, "number of days to search")
	flag.IntVar(&opts.Minutes, "minutes", 0, "number of minutes to search")
	flag.StringVar(&opts.Prefix, "prefix", "", "output filename prefix")

	flag.StringVar(&profile, "profile", "", "credentials profile to use")
	flag.IntVar(&workers, "workers", 0, "concurrent sources to survey (default 1)")
	flag.BoolVar(&doUpload, "upload", false, "upload the finished report to the configured S3 bucket")
	flag.Parse()

	if showVersion {
		fmt.Printf("Surveyor - Endpoint Process Survey\n")
		fmt.Printf("  Version: %s\n", version)
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Built:   %s\n", buildTime)
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if profile != "" {
		cfg.Profile = profile
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if doUpload {
		cfg.UploadEnabled = true
	}

	if err := opts.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := runSurvey(cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("SURVEYOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("credentials-file", filepath.Join(home, ".carbonblack", "credentials.response"))
	v.SetDefault("profile", defaultProfile)
	v.SetDefault("workers", defaultWorkers)
	v.SetDefault("page-size", defaultPageSize)
	v.SetDefault("upload-enabled", false)
	v.SetDefault("upload-use-ssl", true)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "surveyor", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if cfg.Workers < 1 {
		cfg.Workers = defaultWorkers
	}
	if strings.HasPrefix(cfg.CredentialsFile, "~/") {
		cfg.CredentialsFile = filepath.Join(home, cfg.CredentialsFile[2:])
	}

	return cfg, nil
}
