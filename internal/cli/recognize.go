package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/frsdk/frsdk-go/pkg/frsdk"
	"github.com/spf13/cobra"
)

type recognizeFlags struct {
	max      int
	minScore float32
	strategy string
	choose   string
}

func (f recognizeFlags) options(hasMin bool) ([]frsdk.RecognizeOption, error) {
	strategy, err := frsdk.ParseRankStrategy(f.strategy)
	if err != nil {
		return nil, err
	}
	if f.max < 1 {
		return nil, fmt.Errorf("%w: got %d", frsdk.ErrInvalidMaxResults, f.max)
	}
	out := []frsdk.RecognizeOption{frsdk.WithMaxResults(f.max), frsdk.WithStrategy(strategy)}
	if hasMin {
		out = append(out, frsdk.WithMinScore(f.minScore))
	}
	return out, nil
}

func newRecognizeCmd(opts *Options) *cobra.Command {
	flags := recognizeFlags{
		max:      frsdk.DefaultMaxResults,
		strategy: frsdk.RankPersonAverage.String(),
		choose:   frsdk.ChooseLargest.String(),
	}

	cmd := &cobra.Command{
		Use:   "recognize IMAGE",
		Short: "Match the face in IMAGE against the gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			ropts, err := flags.options(cmd.Flags().Changed("min-score"))
			if err != nil {
				return err
			}
			choose, err := frsdk.ParseChooseStrategy(flags.choose)
			if err != nil {
				return err
			}
			img, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			s, err := openSession(opts, sessionRecognizer)
			if err != nil {
				return err
			}
			defer s.Close()

			params := frsdk.DefaultRecognizeParams()
			params.Choose = choose
			if err := s.rec.SetParams(params); err != nil {
				return err
			}

			res, err := s.rec.Recognize(img, ropts...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case !res.Matched:
				fmt.Fprintf(out, "no usable face in %s (%s)\n", args[0], choose.UnusableReason())
			case len(res.Matches) == 0:
				fmt.Fprintln(out, "no gallery match")
			default:
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "RANK\tPERSON\tFACE\tSCORE")
				for i, m := range res.Matches {
					fmt.Fprintf(w, "%d\t%s\t%s\t%.4f\n", i+1, m.PersonID, m.FaceID, m.Score)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}
			return s.Close()
		},
	}

	cmd.Flags().IntVar(&flags.max, "max", flags.max, "maximum number of candidates")
	cmd.Flags().Float32Var(&flags.minScore, "min-score", 0, "drop candidates scoring below this value")
	cmd.Flags().StringVar(&flags.strategy, "strategy", flags.strategy, "ranking strategy (face, person-max, person-avg)")
	cmd.Flags().StringVar(&flags.choose, "choose", flags.choose, "face selection when an image holds several faces (single, largest)")
	return cmd
}
