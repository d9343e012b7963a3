package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cougarbots/site/pkg/intro"
)

// execute 运行根命令并返回标准输出
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeIntroConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "intro.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRootRegistersSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"play", "preview", "timeline", "classify"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--width", "1440", "--height", "900"}, "1440x900: desktop"},
		{[]string{"--width", "640", "--height", "900"}, "640x900: phone"},
		{[]string{"--width", "1280", "--height", "720"}, "1280x720: phone"},
		{[]string{"--width", "800", "--height", "1080"}, "800x1080: phone"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			out, err := execute(t, append([]string{"classify"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestClassifyLayout(t *testing.T) {
	out, err := execute(t, "classify", "--width", "375", "--height", "812",
		"--safe-top", "44", "--safe-bottom", "34", "--layout")
	require.NoError(t, err)
	assert.Contains(t, out, "375x812: phone")
	assert.Contains(t, out, "portrait  (26,143)-(348,678)")
	assert.Contains(t, out, "skip      (291,56)-(363,90)")
	assert.Contains(t, out, "hint y    762")
}

func TestClassifyRequiresSize(t *testing.T) {
	_, err := execute(t, "classify", "--width", "375")
	assert.Error(t, err)

	_, err = execute(t, "classify", "--width", "0", "--height", "10")
	assert.Error(t, err)
}

func TestTimelineText(t *testing.T) {
	path := writeIntroConfig(t, "image_count: 4\n")
	out, err := execute(t, "--config", path, "timeline")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 4)
	assert.Contains(t, lines[0], "TIME")
	assert.Contains(t, lines[1], "mount desktop")
	assert.Contains(t, lines[2], "500.0ms")
	assert.Contains(t, lines[2], "advance 1")

	doneAt := intro.DefaultTimings().DoneAt(4)
	last := lines[len(lines)-1]
	assert.Contains(t, last, "phase done")
	assert.Contains(t, last, fmt.Sprintf("%.1fms", float64(doneAt)/float64(time.Millisecond)))
	for _, phase := range []string{"phase title", "phase subtitle", "phase reveal", "slide-up"} {
		assert.Contains(t, out, phase)
	}
}

func TestTimelineImagesFlagAndPhone(t *testing.T) {
	path := writeIntroConfig(t, "image_count: 4\n")
	out, err := execute(t, "--config", path, "timeline", "--images", "2", "--width", "375", "--height", "812")
	require.NoError(t, err)
	assert.Contains(t, out, "mount phone")
	assert.Contains(t, out, "advance 1")
	assert.NotContains(t, out, "advance 2")
}

func TestTimelineSkip(t *testing.T) {
	path := writeIntroConfig(t, "image_count: 24\n")
	out, err := execute(t, "--config", path, "timeline", "--skip-at", "1s", "-o", "yaml")
	require.NoError(t, err)

	var events []timelineEvent
	require.NoError(t, yaml.Unmarshal([]byte(out), &events))
	require.NotEmpty(t, events)

	var skip, done *timelineEvent
	for i := range events {
		switch events[i].Change {
		case "skip":
			skip = &events[i]
		case "phase done":
			done = &events[i]
		}
	}
	require.NotNil(t, skip)
	require.NotNil(t, done)
	assert.InDelta(t, 1000, skip.AtMs, 1e-9)
	assert.Equal(t, "reveal", skip.Phase)
	wantDone := 1000 + float64(intro.DefaultTimings().SkipDelay.Milliseconds())
	assert.InDelta(t, wantDone, done.AtMs, 1e-9)
	assert.Equal(t, "phase done", events[len(events)-1].Change)
}

func TestTimelineSkipIgnoredAfterReveal(t *testing.T) {
	path := writeIntroConfig(t, "image_count: 2\n")
	timings := intro.DefaultTimings()
	revealAt := timings.DoneAt(2) - timings.RevealDuration/2

	out, err := execute(t, "--config", path, "timeline", "--skip-at", revealAt.String())
	require.NoError(t, err)
	assert.Contains(t, out, "skip ignored")
}

func TestTimelineSkipAfterDone(t *testing.T) {
	path := writeIntroConfig(t, "image_count: 2\n")
	skipAt := intro.DefaultTimings().DoneAt(2) + time.Second

	out, err := execute(t, "--config", path, "timeline", "--skip-at", skipAt.String(), "-o", "yaml")
	require.NoError(t, err)

	var events []timelineEvent
	require.NoError(t, yaml.Unmarshal([]byte(out), &events))
	require.GreaterOrEqual(t, len(events), 2)

	last := events[len(events)-1]
	assert.Equal(t, "skip ignored", last.Change)
	assert.Equal(t, "done", last.Phase)
	assert.InDelta(t, float64(skipAt)/float64(time.Millisecond), last.AtMs, 1e-9)
	assert.Equal(t, "phase done", events[len(events)-2].Change)
}

func TestTimelineRejectsUnknownFormat(t *testing.T) {
	path := writeIntroConfig(t, "image_count: 2\n")
	_, err := execute(t, "--config", path, "timeline", "-o", "xml")
	assert.Error(t, err)
}

func TestMissingConfigFails(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "timeline")
	assert.Error(t, err)
}
