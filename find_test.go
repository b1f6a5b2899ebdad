package bitfind

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"testing"

	itesting "github.com/bgrewell/bitlocker-find/internal/testing"
	"github.com/bgrewell/bitlocker-find/pkg/consts"
	"github.com/bgrewell/bitlocker-find/pkg/device"
	"github.com/bgrewell/bitlocker-find/pkg/logging"
	"github.com/bgrewell/bitlocker-find/pkg/option"
	"github.com/bgrewell/bitlocker-find/pkg/signature"
	"github.com/bgrewell/bitlocker-find/pkg/volume"
	"github.com/stretchr/testify/require"
)

func encryptedHeader() []byte {
	return itesting.BuildHeader(consts.BITLOCKER_SIGNATURE,
		itesting.Placement{Offset: 160, Bytes: signature.MarkerInformationOffset.Bytes()})
}

func writeImages(t *testing.T, images map[string][]byte) map[string]string {
	t.Helper()
	dir := t.TempDir()
	paths := make(map[string]string, len(images))
	for name, data := range images {
		p, err := itesting.WriteImage(dir, name, data)
		require.NoError(t, err)
		paths[name] = p
	}
	return paths
}

// recordingClassifier serves headers from memory and records every path it was asked to open.
func recordingClassifier(headers map[string][]byte, opened *[]string) *volume.Classifier {
	return &volume.Classifier{Open: func(path string) (io.ReadCloser, error) {
		*opened = append(*opened, path)
		h, ok := headers[path]
		if !ok {
			return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrPermission}
		}
		return io.NopCloser(bytes.NewReader(h)), nil
	}}
}

func TestScanPreservesOrderAndDuplicates(t *testing.T) {
	paths := writeImages(t, map[string][]byte{
		"a.img": encryptedHeader(),
		"b.img": make([]byte, 1024),
		"c.img": itesting.BuildHeader(consts.BITLOCKER_TO_GO_SIGNATURE,
			itesting.Placement{Offset: 300, Bytes: signature.MarkerEOWInformationOffset.Bytes()}),
	})

	candidates := []string{paths["c.img"], paths["b.img"], paths["a.img"], paths["c.img"]}
	result := Scan(candidates)

	require.Equal(t, []string{paths["c.img"], paths["a.img"], paths["c.img"]}, result.Matched)
	require.Len(t, result.Reports, 4)
	for i, r := range result.Reports {
		require.Equal(t, candidates[i], r.Path)
	}
	require.Equal(t, 3, ExitCode(result))
}

func TestScanSkipsMissingCandidatesBeforeClassifying(t *testing.T) {
	paths := writeImages(t, map[string][]byte{"a.img": encryptedHeader()})
	missing := filepath.Join(t.TempDir(), "missing")

	var opened []string
	headers := map[string][]byte{paths["a.img"]: encryptedHeader()}
	result := Scan([]string{missing, paths["a.img"]},
		option.WithExistingOnly(true),
		option.WithClassifier(recordingClassifier(headers, &opened)),
	)

	require.Equal(t, []string{paths["a.img"]}, opened)
	require.Equal(t, []string{missing}, result.Skipped)
	require.Equal(t, []string{paths["a.img"]}, result.Matched)
}

func TestScanWithoutExistenceFilterClassifiesEverything(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	result := Scan([]string{missing})

	require.Empty(t, result.Matched)
	require.Empty(t, result.Skipped)
	require.Len(t, result.Reports, 1)
	require.Equal(t, volume.Unreadable, result.Reports[0].Outcome)
	require.Equal(t, volume.ReasonNotExist, result.Reports[0].Reason)
}

func TestScanUnreadableDoesNotAffectLaterCandidates(t *testing.T) {
	var opened []string
	headers := map[string][]byte{"/dev/sdb": encryptedHeader()}
	result := Scan([]string{"/dev/sda", "/dev/sdb", "/dev/sda", "/dev/sdb"},
		option.WithClassifier(recordingClassifier(headers, &opened)))

	require.Equal(t, []string{"/dev/sdb", "/dev/sdb"}, result.Matched)
	require.Equal(t, volume.Unreadable, result.Reports[0].Outcome)
	require.Equal(t, volume.ReasonPermission, result.Reports[0].Reason)
	require.Equal(t, volume.Matched, result.Reports[1].Outcome)
	require.Equal(t, volume.Unreadable, result.Reports[2].Outcome)
	require.Equal(t, volume.Matched, result.Reports[3].Outcome)
}

func TestScanEmpty(t *testing.T) {
	result := Scan(nil, option.WithExistingOnly(true))
	require.Empty(t, result.Matched)
	require.Empty(t, result.Reports)
	require.Equal(t, 0, ExitCode(result))
}

func TestExitCodeIsNotClamped(t *testing.T) {
	var opened []string
	headers := map[string][]byte{}
	candidates := make([]string, 0, 256)
	for i := 0; i < 256; i++ {
		p := fmt.Sprintf("/dev/fake%d", i)
		headers[p] = encryptedHeader()
		candidates = append(candidates, p)
	}

	result := Scan(candidates, option.WithClassifier(recordingClassifier(headers, &opened)))
	require.Equal(t, 256, result.Count())
	require.Equal(t, 256, ExitCode(result))
	require.Equal(t, 0, ExitCode(result)%256, "8-bit hosts observe 256 matches as status 0")
}

func TestScanProgressAndLogging(t *testing.T) {
	paths := writeImages(t, map[string][]byte{"a.img": encryptedHeader(), "b.img": make([]byte, 16)})
	buf := &bytes.Buffer{}

	var progress []string
	result := Scan([]string{paths["a.img"], paths["b.img"]},
		option.WithLogger(logging.NewLogger(logging.NewSimpleLogger(buf, logging.LEVEL_TRACE, false))),
		option.WithScanProgress(func(path string, n, total int) {
			progress = append(progress, fmt.Sprintf("%d/%d %s", n, total, filepath.Base(path)))
		}),
	)

	require.Equal(t, []string{"1/2 a.img", "2/2 b.img"}, progress)
	require.Equal(t, []string{paths["a.img"]}, result.Matched)

	output := buf.String()
	require.Contains(t, output, "[scan] volume header matched")
	require.Contains(t, output, "identifier=4967d63b-2e29-4ad8-8399-f6a339e3d001")
	require.Contains(t, output, "reason=short-read")
	require.Contains(t, output, "scan complete")
}

func TestFind(t *testing.T) {
	paths := writeImages(t, map[string][]byte{"a.img": encryptedHeader(), "b.img": make([]byte, 1024)})

	t.Run("static source", func(t *testing.T) {
		result, err := Find(device.Static{paths["a.img"], paths["b.img"]})
		require.NoError(t, err)
		require.Equal(t, []string{paths["a.img"]}, result.Matched)
	})

	t.Run("partitions table", func(t *testing.T) {
		dir := filepath.Dir(paths["a.img"])
		table, err := itesting.WriteProcPartitions(t.TempDir(), "a.img", "b.img")
		require.NoError(t, err)

		result, err := Find(device.ProcPartitions{Path: table, DevDir: dir})
		require.NoError(t, err)
		require.Equal(t, []string{paths["a.img"]}, result.Matched)
	})

	t.Run("unsupported platform", func(t *testing.T) {
		result, err := Find(device.Unsupported{Name: "plan9"})
		require.ErrorIs(t, err, device.ErrUnsupportedPlatform)
		require.Empty(t, result.Matched)
		require.Equal(t, 0, ExitCode(result))
	})

	t.Run("malformed partitions table", func(t *testing.T) {
		table, err := itesting.WriteImage(t.TempDir(), "partitions", []byte("major minor  #blocks  name\n"))
		require.NoError(t, err)

		_, err = Find(device.ProcPartitions{Path: table, DevDir: "/dev"})
		require.ErrorIs(t, err, device.ErrMalformedPartitions)
	})
}

func TestScanProgressCountsOnlyClassifiedCandidates(t *testing.T) {
	paths := writeImages(t, map[string][]byte{"a.img": encryptedHeader(), "b.img": make([]byte, 1024)})
	dir := filepath.Dir(paths["a.img"])

	var progress []string
	result := Scan([]string{filepath.Join(dir, "gone1"), paths["a.img"], filepath.Join(dir, "gone2"), paths["b.img"]},
		option.WithExistingOnly(true),
		option.WithScanProgress(func(path string, n, total int) {
			progress = append(progress, fmt.Sprintf("%d/%d %s", n, total, filepath.Base(path)))
		}),
	)

	require.Equal(t, []string{"1/2 a.img", "2/2 b.img"}, progress)
	require.Len(t, result.Skipped, 2)
	require.Equal(t, []string{paths["a.img"]}, result.Matched)
}
