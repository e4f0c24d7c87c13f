package cli

import (
	"fmt"

	"github.com/frsdk/frsdk-go/pkg/frsdk"
	"github.com/spf13/cobra"
)

func newRemoveCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PERSON FACE",
		Short: "Delete one face from the gallery and rewrite it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			person, face := args[0], args[1]
			if err := frsdk.ValidateID(person); err != nil {
				return fmt.Errorf("person id: %w", err)
			}
			if err := frsdk.ValidateID(face); err != nil {
				return fmt.Errorf("face id: %w", err)
			}

			s, err := openSession(opts, sessionRecognizer)
			if err != nil {
				return err
			}
			defer s.Close()

			status, err := s.rec.DeleteFace(person, face)
			if err != nil {
				return err
			}
			if status == frsdk.DeleteNotFound {
				fmt.Fprintf(cmd.OutOrStdout(), "%s/%s not in gallery\n", person, face)
				return s.Close()
			}
			if err := s.rec.SaveFaces(opts.GalleryPath, frsdk.SaveAll); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s/%s\n", person, face)
			return s.Close()
		},
	}
}
