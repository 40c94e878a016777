package transcript

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionStart = time.Date(2026, 10, 14, 9, 5, 7, 42_000_000, time.UTC)

func newTestSink(t *testing.T, opts Options) (*Sink, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "Logging Output")
	opts.Dir = dir
	if opts.Levels == LevelNone {
		opts.Levels = LevelAll
	}
	opts.Now = func() time.Time { return sessionStart }
	s := New(opts)
	t.Cleanup(func() { _ = s.Close() })
	return s, dir
}

func readLog(t *testing.T, s *Sink) string {
	t.Helper()
	require.NotEmpty(t, s.Path(), "log file was never opened")
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	return string(data)
}

func TestFileName(t *testing.T) {
	local := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2026, 1, 2, 5, 4, 5, 6_000_000, local)
	assert.Equal(t, "2026-01-02-03-04-05-006.txt", FileName(ts))
}

func TestSink_PushIndentsAndMirrors(t *testing.T) {
	s, dir := newTestSink(t, Options{IndentWidth: 2})

	s.Push(LevelMessage, "top")
	s.Indent(1)
	s.Push(LevelMessage, "nested")
	s.Dedent(1)

	want := "\ntop\n  nested"
	assert.Equal(t, want, s.Buffer())
	assert.Equal(t, want, readLog(t, s))
	assert.Equal(t, filepath.Join(dir, "2026-10-14-09-05-07-042.txt"), s.Path())
}

func TestSink_PushManyIndentsEveryLine(t *testing.T) {
	s, _ := newTestSink(t, Options{IndentWidth: 3})

	s.Indent(1)
	s.PushMany(LevelError, "a", "b", "c")

	assert.Equal(t, "\n   a\n   b\n   c", s.Buffer())
}

func TestSink_PushManyEmptyIsNoop(t *testing.T) {
	s, _ := newTestSink(t, Options{})
	s.PushMany(LevelMessage)
	assert.Empty(t, s.Buffer())
	assert.Empty(t, s.Path(), "no file should be created without a write")
}

func TestSink_FilteredSeverityStillReachesFile(t *testing.T) {
	s, _ := newTestSink(t, Options{Levels: LevelMessage | LevelError})

	s.Push(LevelMessage, "kept")
	before := s.Buffer()
	s.Push(LevelWarning, "hidden")

	assert.Equal(t, before, s.Buffer(), "filtered push must not change the buffer")
	assert.Contains(t, readLog(t, s), "\nhidden")
}

func TestSink_TrimFromFront(t *testing.T) {
	s, _ := newTestSink(t, Options{MaxVisible: 10})

	s.Push(LevelMessage, "abcdef")
	s.Push(LevelMessage, "ghijkl")

	// "\nabcdef\nghijkl" is 14 runes; the last 10 survive.
	assert.Equal(t, "def\nghijkl", s.Buffer())
	assert.Equal(t, "\nabcdef\nghijkl", readLog(t, s))
}

func TestSink_TrimKeepsMostRecentSuffix(t *testing.T) {
	const max = 37
	s, _ := newTestSink(t, Options{MaxVisible: max, IndentWidth: 1})
	rng := rand.New(rand.NewSource(7))

	var all strings.Builder
	for i := 0; i < 200; i++ {
		msg := strings.Repeat(string(rune('a'+rng.Intn(26))), rng.Intn(15))
		if rng.Intn(3) == 0 {
			s.Indent(1)
		} else {
			s.Dedent(1)
		}
		s.Push(LevelMessage, msg)
		all.WriteString("\n" + strings.Repeat(" ", s.Depth()) + msg)

		full := []rune(all.String())
		if len(full) > max {
			full = full[len(full)-max:]
		}
		require.LessOrEqual(t, len([]rune(s.Buffer())), max)
		require.Equal(t, string(full), s.Buffer(), "iteration %d", i)
	}
}

func TestSink_TrimCountsRunesNotBytes(t *testing.T) {
	s, _ := newTestSink(t, Options{MaxVisible: 4})
	s.Push(LevelMessage, "héllo")
	assert.Equal(t, "llo", strings.TrimPrefix(s.Buffer(), "é"))
	assert.Equal(t, 4, len([]rune(s.Buffer())))
}

func TestSink_PushIndentedRestoresDepth(t *testing.T) {
	s, _ := newTestSink(t, Options{IndentWidth: 1})
	s.Indent(2)

	s.PushIndented(LevelMessage, 3, "deep")

	assert.Equal(t, 2, s.Depth())
	assert.Equal(t, "\n     deep", s.Buffer())
}

func TestSink_PushIndentedRestoresDepthWhenObserverPanics(t *testing.T) {
	s, _ := newTestSink(t, Options{})
	s.SetObserver(func(Entry) { panic("surface gone") })

	assert.Panics(t, func() { s.PushManyIndented(LevelMessage, 2, "x") })
	assert.Equal(t, 0, s.Depth())
}

func TestSink_ClearLeavesFile(t *testing.T) {
	s, _ := newTestSink(t, Options{})
	s.Push(LevelMessage, "one")
	s.Clear()
	s.Push(LevelMessage, "two")

	assert.Equal(t, "\ntwo", s.Buffer())
	assert.Equal(t, "\none\ntwo", readLog(t, s))
}

func TestSink_ObserverSeesVisibility(t *testing.T) {
	var seen []Entry
	s, _ := newTestSink(t, Options{Levels: LevelError, Observer: func(e Entry) { seen = append(seen, e) }})

	s.Push(LevelMessage, "m")
	s.Push(LevelError, "e")

	require.Len(t, seen, 2)
	assert.Equal(t, Entry{Text: "\nm", Level: LevelMessage, Visible: false}, seen[0])
	assert.Equal(t, Entry{Text: "\ne", Level: LevelError, Visible: true}, seen[1])
}

func TestSink_NoDirDisablesFile(t *testing.T) {
	s := New(Options{Levels: LevelAll})
	s.Push(LevelMessage, "memory only")
	assert.Empty(t, s.Path())
	assert.NoError(t, s.Err())
	assert.NoError(t, s.Close())
}

func TestSink_OpenFailureIsReported(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	s := New(Options{Levels: LevelAll, Dir: filepath.Join(blocker, "logs")})
	s.Push(LevelMessage, "still buffered")

	assert.Error(t, s.Err())
	assert.Equal(t, "\nstill buffered", s.Buffer())
}

func TestSink_CloseIsIdempotent(t *testing.T) {
	s, _ := newTestSink(t, Options{})
	s.Push(LevelMessage, "x")
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	s.Push(LevelMessage, "after close")
	assert.Equal(t, "\nx", readLog(t, s))
}
