// Package cli implements the frsdk-demo command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/frsdk/frsdk-go/pkg/frsdk"
	"github.com/frsdk/frsdk-go/pkg/frsdk/logging"
	"github.com/spf13/cobra"
)

const (
	defaultGalleryPath = "./gallery/star_face_gallery"
	defaultModelPath   = "./models"

	envLibrary  = "FRSDK_LIBRARY"
	envLogLevel = "FRSDK_LOG_LEVEL"
)

// Options holds configuration shared by every command.
type Options struct {
	GalleryPath string
	ModelPath   string
	LibraryPath string
	Logger      logging.Logger

	// Open loads the library; nil means frsdk.Open.
	Open func(frsdk.Config) (*frsdk.Library, error)
}

// NewRootCmd builds the frsdk-demo command tree. Without a subcommand it runs
// the lifecycle demo: create both instances, bootstrap the gallery, destroy
// both instances.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&Options{Open: frsdk.Open})
}

func newRootCmd(opts *Options) *cobra.Command {
	root := &cobra.Command{
		Use:     "frsdk-demo",
		Short:   "Face recognizing service demo",
		Version: frsdk.WrapperVersion(),
		Args:    cobra.NoArgs,

		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.LibraryPath = os.Getenv(envLibrary)
			if opts.LibraryPath == "" {
				opts.LibraryPath = frsdk.DefaultLibraryPath()
			}
			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: logging.ParseLevel(os.Getenv(envLogLevel)),
			})
			opts.Logger = logging.New(slog.New(handler))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runDemo(cmd, opts)
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.PersistentFlags().StringVarP(&opts.GalleryPath, "gallery_path", "g", defaultGalleryPath, "gallery file")
	root.PersistentFlags().StringVarP(&opts.ModelPath, "model_path", "m", defaultModelPath, "model file")

	root.AddCommand(
		newDetectCmd(opts),
		newEnrollCmd(opts),
		newRecognizeCmd(opts),
		newRemoveCmd(opts),
	)
	return root
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, frsdk.ErrNotBuilt) {
			fmt.Fprintf(os.Stderr, "library unavailable: %v\n", err)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDemo(cmd *cobra.Command, opts *Options) error {
	s, err := openSession(opts, sessionDetector|sessionRecognizer)
	if err != nil {
		return err
	}

	state := "loaded"
	if s.created {
		state = "created"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "frsdk %s (%s)\n", frsdk.WrapperVersion(), frsdk.UpstreamVersion)
	fmt.Fprintf(cmd.OutOrStdout(), "detector and recognizer ready, gallery %s %s\n", opts.GalleryPath, state)

	return s.Close()
}
