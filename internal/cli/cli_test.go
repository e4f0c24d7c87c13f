package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/frsdk/frsdk-go/internal/native"
	"github.com/frsdk/frsdk-go/internal/native/nativefake"
	"github.com/frsdk/frsdk-go/pkg/frsdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(envLibrary, filepath.Join(t.TempDir(), "libFRSDK.so"))
	t.Setenv(envLogLevel, "error")

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// executeFake runs the command tree against an in-memory library.
func executeFake(t *testing.T, ctx context.Context, fake *nativefake.Lib, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(envLogLevel, "error")

	cmd := newRootCmd(&Options{Open: func(cfg frsdk.Config) (*frsdk.Library, error) {
		return frsdk.NewLibrary(fake, cfg), nil
	}})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	writeImage(t, path, "img")
}

func writeImage(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newFake() *nativefake.Lib {
	fake := nativefake.New()
	fake.Faces["face"] = []native.Rect{{Left: 0, Top: 0, Right: 50, Bottom: 50}}
	fake.Faces["group"] = []native.Rect{
		{Left: 0, Top: 0, Right: 50, Bottom: 50},
		{Left: 60, Top: 10, Right: 90, Bottom: 40},
	}
	fake.Faces["blank"] = nil
	return fake
}

func indexOf(calls []string, op string) int {
	for i, c := range calls {
		if c == op {
			return i
		}
	}
	return -1
}

func TestRootFlagDefaults(t *testing.T) {
	cmd := NewRootCmd()

	g := cmd.PersistentFlags().Lookup("gallery_path")
	require.NotNil(t, g)
	assert.Equal(t, "g", g.Shorthand)
	assert.Equal(t, defaultGalleryPath, g.DefValue)

	m := cmd.PersistentFlags().Lookup("model_path")
	require.NotNil(t, m)
	assert.Equal(t, "m", m.Shorthand)
	assert.Equal(t, defaultModelPath, m.DefValue)

	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"detect", "enroll", "recognize", "remove"})
}

func TestRootFailsWithoutLibrary(t *testing.T) {
	_, err := execute(t, "-g", filepath.Join(t.TempDir(), "gallery"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open FRSDK library")
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, frsdk.WrapperVersion()+"\n", out)
}

func TestRecognizeRejectsFlagsBeforeLoading(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad strategy", []string{"recognize", "--strategy", "median", "x.jpg"}, "unknown rank strategy"},
		{"zero max", []string{"recognize", "--max", "0", "x.jpg"}, frsdk.ErrInvalidMaxResults.Error()},
		{"bad choose", []string{"recognize", "--choose", "all", "x.jpg"}, "choose"},
		{"missing image", []string{"recognize", "does-not-exist.jpg"}, "does-not-exist.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.NotContains(t, err.Error(), "open FRSDK library")
		})
	}
}

func TestEnrollEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "enroll", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no images found")
}

func TestRemoveValidatesIDs(t *testing.T) {
	_, err := execute(t, "remove", strings.Repeat("p", frsdk.IDWidth+1), "f1")
	require.ErrorIs(t, err, frsdk.ErrInvalidID)

	_, err = execute(t, "remove", "alice", "")
	require.ErrorIs(t, err, frsdk.ErrInvalidID)
}

func TestCollectEnrollments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bob", "front.JPEG"))
	writeFile(t, filepath.Join(dir, "alice", "2.png"))
	writeFile(t, filepath.Join(dir, "alice", "1.jpg"))
	writeFile(t, filepath.Join(dir, "alice", "notes.txt"))
	writeFile(t, filepath.Join(dir, "alice", "old", "0.jpg"))
	writeFile(t, filepath.Join(dir, "cover.jpg"))

	got, err := collectEnrollments(dir)
	require.NoError(t, err)
	assert.Equal(t, []enrollment{
		{PersonID: "alice", FaceID: "1", Path: filepath.Join(dir, "alice", "1.jpg")},
		{PersonID: "alice", FaceID: "2", Path: filepath.Join(dir, "alice", "2.png")},
		{PersonID: "bob", FaceID: "front", Path: filepath.Join(dir, "bob", "front.JPEG")},
	}, got)
}

func TestCollectEnrollmentsRejectsLongIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, strings.Repeat("x", frsdk.IDWidth+1), "1.jpg"))

	_, err := collectEnrollments(dir)
	require.ErrorIs(t, err, frsdk.ErrInvalidID)
	assert.Contains(t, err.Error(), "person id")
}

func TestCollectEnrollmentsMissingDir(t *testing.T) {
	_, err := collectEnrollments(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestDemoLifecycleOrder(t *testing.T) {
	gallery := filepath.Join(t.TempDir(), "star_face_gallery")

	fake := newFake()
	out, _, err := executeFake(t, context.Background(), fake, "-g", gallery, "-m", "./models")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"FD_CreateIns", "FR_CreateIns", "FR_CreateNewGallery", "FR_LoadFaces",
		"FD_DestroyIns", "FR_DestroyIns", "dlclose",
	}, fake.Calls)
	assert.Contains(t, out, gallery+" created")

	fake = newFake()
	out, _, err = executeFake(t, context.Background(), fake, "-g", gallery)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"FD_CreateIns", "FR_CreateIns", "FR_LoadFaces",
		"FD_DestroyIns", "FR_DestroyIns", "dlclose",
	}, fake.Calls)
	assert.Contains(t, out, gallery+" loaded")
}

func TestDemoDestroysInstancesWhenLoadFails(t *testing.T) {
	fake := newFake()
	fake.Fail["FR_LoadFaces"] = native.FRSDKE_WRONG_FACES_FILE

	_, _, err := executeFake(t, context.Background(), fake, "-g", filepath.Join(t.TempDir(), "gallery"))
	require.Error(t, err)
	code, ok := frsdk.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, frsdk.CodeWrongFacesFile, code)
	assert.Equal(t, []string{"FD_DestroyIns", "FR_DestroyIns", "dlclose"}, fake.Calls[len(fake.Calls)-3:])
	assert.True(t, fake.Closed)
}

func TestDetectPrintsRectangles(t *testing.T) {
	img := filepath.Join(t.TempDir(), "group.jpg")
	writeImage(t, img, "group")

	fake := newFake()
	out, _, err := executeFake(t, context.Background(), fake, "detect", img)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{img, "0", "0", "0", "50", "50"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{img, "1", "60", "10", "90", "40"}, strings.Fields(lines[2]))
	assert.Zero(t, fake.Count("FR_CreateIns"))
	assert.Equal(t, []string{"FD_DestroyIns", "dlclose"}, fake.Calls[len(fake.Calls)-2:])
}

func TestEnrollCountsAndSavesIncrementally(t *testing.T) {
	dir := t.TempDir()
	gallery := filepath.Join(t.TempDir(), "gallery")
	writeImage(t, filepath.Join(dir, "alice", "1.jpg"), "face")
	writeImage(t, filepath.Join(dir, "alice", "2.jpg"), "group")
	writeImage(t, filepath.Join(dir, "bob", "1.jpg"), "face")
	writeImage(t, filepath.Join(dir, "carol", "1.jpg"), "blank")

	fake := newFake()
	fake.Entries = []nativefake.Entry{{PersonID: "bob", FaceID: "1"}}

	out, errOut, err := executeFake(t, context.Background(), fake, "-g", gallery, "enroll", dir)
	require.NoError(t, err)
	assert.Equal(t, "added 2, duplicate 1, rejected 1\n", out)
	assert.Contains(t, errOut, "Enrolling")
	assert.Equal(t, []nativefake.Save{{Path: gallery, All: false}}, fake.Saves)
	assert.Less(t, indexOf(fake.Calls, "FR_SaveFaces"), indexOf(fake.Calls, "FR_DestroyIns"))
}

func TestEnrollSingleChooseRejectsGroups(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "alice", "1.jpg"), "group")

	fake := newFake()
	out, _, err := executeFake(t, context.Background(), fake,
		"-g", filepath.Join(t.TempDir(), "gallery"), "enroll", "--choose", "single", dir)
	require.NoError(t, err)
	assert.Equal(t, "added 0, duplicate 0, rejected 1\n", out)
	assert.Empty(t, fake.Saves)
}

func TestEnrollKeepsAcceptedFacesWhenAddFails(t *testing.T) {
	dir := t.TempDir()
	gallery := filepath.Join(t.TempDir(), "gallery")
	writeImage(t, filepath.Join(dir, "alice", "1.jpg"), "face")
	writeImage(t, filepath.Join(dir, "bob", "1.jpg"), "face")
	writeImage(t, filepath.Join(dir, "zz", "1.jpg"), "corrupt")

	fake := newFake()
	out, errOut, err := executeFake(t, context.Background(), fake, "-g", gallery, "enroll", dir)
	require.Error(t, err)
	code, ok := frsdk.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, frsdk.CodeImageDecodeFailed, code)
	assert.Contains(t, err.Error(), filepath.Join(dir, "zz", "1.jpg"))

	assert.Equal(t, "added 2, duplicate 0, rejected 0\n", out)
	assert.NotContains(t, errOut, "3/3")
	assert.Equal(t, []nativefake.Save{{Path: gallery, All: false}}, fake.Saves)
	assert.Less(t, indexOf(fake.Calls, "FR_SaveFaces"), indexOf(fake.Calls, "FR_DestroyIns"))
	assert.Len(t, fake.Entries, 2)
}

func TestEnrollReportsSaveFailure(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "alice", "1.jpg"), "face")
	writeImage(t, filepath.Join(dir, "zz", "1.jpg"), "corrupt")

	fake := newFake()
	fake.Fail["FR_SaveFaces"] = native.FRSDKE_WRITE_FACES_FILE_FAIL

	_, _, err := executeFake(t, context.Background(), fake, "-g", filepath.Join(t.TempDir(), "gallery"), "enroll", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FR_AddFace")
	assert.Contains(t, err.Error(), "FR_SaveFaces")
	assert.Equal(t, []string{"FR_DestroyIns", "dlclose"}, fake.Calls[len(fake.Calls)-2:])
}

func TestEnrollInterruptedBeforeFirstFace(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "alice", "1.jpg"), "face")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := newFake()
	_, _, err := executeFake(t, ctx, fake, "-g", filepath.Join(t.TempDir(), "gallery"), "enroll", dir)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, fake.Count("FR_AddFace"))
	assert.Empty(t, fake.Saves)
	assert.True(t, fake.Closed)
}

func TestRemoveRewritesWholeGallery(t *testing.T) {
	gallery := filepath.Join(t.TempDir(), "gallery")

	fake := newFake()
	fake.Entries = []nativefake.Entry{{PersonID: "alice", FaceID: "1"}, {PersonID: "bob", FaceID: "1"}}
	out, _, err := executeFake(t, context.Background(), fake, "-g", gallery, "remove", "alice", "1")
	require.NoError(t, err)
	assert.Equal(t, "removed alice/1\n", out)
	assert.Equal(t, []nativefake.Entry{{PersonID: "bob", FaceID: "1"}}, fake.Entries)
	assert.Equal(t, []nativefake.Save{{Path: gallery, All: true}}, fake.Saves)

	out, _, err = executeFake(t, context.Background(), fake, "-g", gallery, "remove", "alice", "1")
	require.NoError(t, err)
	assert.Equal(t, "alice/1 not in gallery\n", out)
	assert.Len(t, fake.Saves, 1)
}

func TestRecognizePrintsRankedMatches(t *testing.T) {
	img := filepath.Join(t.TempDir(), "query.jpg")
	writeImage(t, img, "face")

	fake := newFake()
	fake.Results["face"] = []native.RecogResult{
		nativefake.Result("alice", "1", 0.91),
		nativefake.Result("bob", "2", 0.42),
	}
	out, _, err := executeFake(t, context.Background(), fake,
		"-g", filepath.Join(t.TempDir(), "gallery"), "recognize", "--min-score", "0.5", "--max", "4", img)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"RANK", "PERSON", "FACE", "SCORE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "alice", "1", "0.9100"}, strings.Fields(lines[1]))
	assert.Equal(t, int32(4), fake.LastRecognizeN)
}

func TestRecognizeExplainsUnusableImage(t *testing.T) {
	img := filepath.Join(t.TempDir(), "group.jpg")
	writeImage(t, img, "group")

	fake := newFake()
	out, _, err := executeFake(t, context.Background(), fake,
		"-g", filepath.Join(t.TempDir(), "gallery"), "recognize", "--choose", "single", img)
	require.NoError(t, err)
	assert.Equal(t, "no usable face in "+img+" (image does not contain exactly one face)\n", out)
}

func TestRecognizeNoGalleryMatch(t *testing.T) {
	img := filepath.Join(t.TempDir(), "face.jpg")
	writeImage(t, img, "face")

	out, _, err := executeFake(t, context.Background(), newFake(),
		"-g", filepath.Join(t.TempDir(), "gallery"), "recognize", img)
	require.NoError(t, err)
	assert.Equal(t, "no gallery match\n", out)
}
