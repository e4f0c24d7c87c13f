package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/frsdk/frsdk-go/pkg/frsdk"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
}

// enrollment is one image to add to the gallery.
type enrollment struct {
	PersonID string
	FaceID   string
	Path     string
}

// collectEnrollments walks dir/<person>/<face>.<ext>. Files at other depths
// and non-image files are ignored.
func collectEnrollments(dir string) ([]enrollment, error) {
	var out []enrollment
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if d.IsDir() {
			if len(parts) > 1 {
				return fs.SkipDir
			}
			return nil
		}
		if len(parts) != 2 {
			return nil
		}
		ext := filepath.Ext(parts[1])
		if !imageExts[strings.ToLower(ext)] {
			return nil
		}
		e := enrollment{
			PersonID: parts[0],
			FaceID:   strings.TrimSuffix(parts[1], ext),
			Path:     path,
		}
		if err := frsdk.ValidateID(e.PersonID); err != nil {
			return fmt.Errorf("%s: person id: %w", path, err)
		}
		if err := frsdk.ValidateID(e.FaceID); err != nil {
			return fmt.Errorf("%s: face id: %w", path, err)
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PersonID != out[j].PersonID {
			return out[i].PersonID < out[j].PersonID
		}
		return out[i].FaceID < out[j].FaceID
	})
	return out, nil
}

type enrollSummary struct {
	Added     int
	Duplicate int
	Rejected  int
}

func newEnrollCmd(opts *Options) *cobra.Command {
	var choose string

	cmd := &cobra.Command{
		Use:   "enroll DIR",
		Short: "Add DIR/<person>/<face>.<ext> images to the gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			strategy, err := frsdk.ParseChooseStrategy(choose)
			if err != nil {
				return err
			}
			items, err := collectEnrollments(args[0])
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return fmt.Errorf("no images found under %s", args[0])
			}

			s, err := openSession(opts, sessionRecognizer)
			if err != nil {
				return err
			}
			defer s.Close()

			params := frsdk.DefaultRecognizeParams()
			params.Choose = strategy
			if err := s.rec.SetParams(params); err != nil {
				return err
			}

			// Faces added before a failure or an interrupt are saved too.
			sum, err := enroll(cmd.Context(), s.rec, items, opts, cmd.ErrOrStderr())
			if sum.Added > 0 {
				if serr := s.rec.SaveFaces(opts.GalleryPath, frsdk.SaveIncremental); serr != nil {
					err = errors.Join(err, serr)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d, duplicate %d, rejected %d\n", sum.Added, sum.Duplicate, sum.Rejected)
			if err != nil {
				return err
			}
			return s.Close()
		},
	}

	cmd.Flags().StringVar(&choose, "choose", frsdk.ChooseLargest.String(), "face selection when an image holds several faces (single, largest)")
	return cmd
}

func enroll(ctx context.Context, rec *frsdk.Recognizer, items []enrollment, opts *Options, w io.Writer) (sum enrollSummary, err error) {
	bar := progressbar.NewOptions(len(items),
		progressbar.OptionSetDescription("Enrolling"),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
	)
	defer func() {
		if err != nil {
			_ = bar.Exit()
			return
		}
		_ = bar.Finish()
	}()

	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		img, err := os.ReadFile(it.Path)
		if err != nil {
			return sum, err
		}
		status, err := rec.AddFace(img, it.PersonID, it.FaceID)
		if err != nil {
			return sum, fmt.Errorf("%s: %w", it.Path, err)
		}
		switch status {
		case frsdk.AddOK:
			sum.Added++
		case frsdk.AddDuplicate:
			sum.Duplicate++
		default:
			sum.Rejected++
			opts.Logger.Warn(ctx, "face not added", "path", it.Path, "reason", status.Describe(rec.Choose()))
		}
		_ = bar.Add(1)
	}
	return sum, nil
}
