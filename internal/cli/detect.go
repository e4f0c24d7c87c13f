package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/frsdk/frsdk-go/pkg/frsdk"
	"github.com/spf13/cobra"
)

func newDetectCmd(opts *Options) *cobra.Command {
	params := frsdk.DefaultDetectParams()

	cmd := &cobra.Command{
		Use:   "detect IMAGE...",
		Short: "Print the face rectangles found in each image",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			s, err := openSession(opts, sessionDetector)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.det.SetParams(params); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "IMAGE\tFACE\tLEFT\tTOP\tRIGHT\tBOTTOM")
			for _, path := range args {
				img, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				faces, err := s.det.Detect(img)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if len(faces) == 0 {
					fmt.Fprintf(w, "%s\t-\t\t\t\t\n", path)
				}
				for i, r := range faces {
					fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\n", path, i, r.Left, r.Top, r.Right, r.Bottom)
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}
			return s.Close()
		},
	}

	cmd.Flags().Float64Var(&params.MinFaceRatio, "min-face-ratio", params.MinFaceRatio, "smallest face relative to the longer image side")
	cmd.Flags().Float64Var(&params.ExpandRatio, "expand-ratio", params.ExpandRatio, "face rectangle scale factor (>= 1.0)")
	return cmd
}
