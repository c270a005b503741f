package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/threatops/surveyor/internal/cbr"
	"github.com/threatops/surveyor/internal/definitions"
	"github.com/threatops/surveyor/internal/query"
	"github.com/threatops/surveyor/internal/survey"
	"github.com/threatops/surveyor/internal/upload"
)

const uploadTimeout = 2 * time.Minute

// runSurvey wires credentials, backend client, report and runner
// together and executes the selected input mode once.
func runSurvey(cfg appConfig, opts surveyOptions) error {
	// Input paths are checked before touching the network so typos
	// fail fast.
	if opts.DefFile != "" {
		if _, err := os.Stat(opts.DefFile); err != nil {
			return fmt.Errorf("deffile does not exist: %s", opts.DefFile)
		}
	}
	if opts.DefDir != "" {
		info, err := os.Stat(opts.DefDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("defdir does not exist: %s", opts.DefDir)
		}
	}

	profile, err := cbr.LoadProfile(cfg.CredentialsFile, cfg.Profile)
	if err != nil {
		return err
	}
	client := cbr.NewClient(profile)
	client.PageSize = cfg.PageSize

	outName := opts.outputFilename()
	out, err := os.Create(outName)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	report, err := survey.NewReport(out)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		fmt.Println("\nCaught interrupt. Returning what we have . . .")
		cancel()
		// A second interrupt falls through to the default handler and
		// kills the process.
		signal.Stop(sigCh)
	}()

	printStartupBanner(cfg, opts, profile.URL, outName)

	runner := &survey.Runner{
		Searcher: client,
		Report:   report,
		Window:   query.Window(opts.Days, opts.Minutes),
		Workers:  cfg.Workers,
	}

	switch {
	case opts.Query != "":
		err = runner.RunQuery(ctx, opts.Query)
	case opts.IOCFile != "":
		err = runner.RunIOCFile(ctx, opts.IOCFile, opts.IOCType)
	case opts.DefFile != "":
		err = runner.RunDefinitionFiles(ctx, []string{opts.DefFile})
	default:
		files, derr := definitions.Discover(opts.DefDir)
		if derr != nil {
			return derr
		}
		if len(files) == 0 {
			log.Printf("no definition files found in %s", opts.DefDir)
		}
		err = runner.RunDefinitionFiles(ctx, files)
	}
	if err != nil {
		return err
	}

	log.Printf("wrote %d rows to %s", report.Rows(), outName)

	if cfg.UploadEnabled {
		return uploadReport(cfg, outName)
	}
	return nil
}

// uploadReport ships the finished CSV. It runs on its own context so
// an interrupted survey still delivers its partial report.
func uploadReport(cfg appConfig, outName string) error {
	uploader, err := upload.NewS3Uploader(upload.S3Config{
		BucketURL:    cfg.UploadBucketURL,
		Endpoint:     cfg.UploadS3Endpoint,
		Region:       cfg.UploadS3Region,
		AccessKey:    cfg.UploadS3AccessKey,
		SecretKey:    cfg.UploadS3SecretKey,
		SessionToken: cfg.UploadS3SessToken,
		UseSSL:       cfg.UploadS3UseSSL,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()

	if err := uploader.UploadFile(ctx, outName); err != nil {
		return err
	}
	log.Printf("uploaded %s to %s", outName, cfg.UploadBucketURL)
	return nil
}

func printStartupBanner(cfg appConfig, opts surveyOptions, serverURL, outName string) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	bold := lipgloss.NewStyle().Bold(true)

	mode := "query"
	target := opts.Query
	switch {
	case opts.IOCFile != "":
		mode, target = "ioc file", opts.IOCFile
	case opts.DefFile != "":
		mode, target = "definition file", opts.DefFile
	case opts.DefDir != "":
		mode, target = "definition directory", opts.DefDir
	}

	window := "all time"
	if w := query.Window(opts.Days, opts.Minutes); w != "" {
		window = w[1:] // drop the leading space for display
	}

	fmt.Println()
	fmt.Println(bold.Render("  Surveyor ") + dim.Render("v"+version))
	fmt.Println()
	fmt.Printf("  Server   %s\n", cyan.Render(serverURL))
	fmt.Printf("  Mode     %s %s\n", mode, cyan.Render(target))
	fmt.Printf("  Window   %s\n", window)
	fmt.Printf("  Output   %s\n", outName)
	if cfg.Workers > 1 {
		fmt.Printf("  Workers  %d\n", cfg.Workers)
	}
	fmt.Println()
}
