package srcloop

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/joeycumines/logiface"
)

// textEvent is the minimal logiface.Event implementation backing the
// package's default logger: a level plus an ordered field buffer, rendered
// as "key=value" pairs by textWriter. Grounded on the teacher's
// logging.go, which hand-rolled its own Logger/LogLevel/WriterLogger types;
// here the same text-line shape is produced through logiface's pluggable
// Event/Writer contract instead of a bespoke logger.
type textEvent struct {
	logiface.UnimplementedEvent
	level logiface.Level
	msg   string
	err   error
	pairs []textField
}

type textField struct {
	key string
	val string
}

func (e *textEvent) Level() logiface.Level { return e.level }

func (e *textEvent) AddField(key string, val any) {
	e.pairs = append(e.pairs, textField{key, fmt.Sprint(val)})
}

func (e *textEvent) AddMessage(msg string) bool {
	e.msg = msg
	return true
}

func (e *textEvent) AddError(err error) bool {
	e.err = err
	return true
}

func (e *textEvent) AddString(key string, val string) bool {
	e.pairs = append(e.pairs, textField{key, val})
	return true
}

func (e *textEvent) AddInt(key string, val int) bool {
	e.pairs = append(e.pairs, textField{key, fmt.Sprintf("%d", val)})
	return true
}

func (e *textEvent) AddBool(key string, val bool) bool {
	e.pairs = append(e.pairs, textField{key, fmt.Sprintf("%t", val)})
	return true
}

// textEventFactory allocates textEvent values; pooled via sync.Pool since
// iterate.go may log on every iteration and the loop is meant to be
// allocation-conscious on the hot path.
type textEventFactory struct {
	pool sync.Pool
}

func newTextEventFactory() *textEventFactory {
	f := &textEventFactory{}
	f.pool.New = func() any { return new(textEvent) }
	return f
}

func (f *textEventFactory) NewEvent(level logiface.Level) *textEvent {
	e := f.pool.Get().(*textEvent)
	e.level = level
	e.msg = ""
	e.err = nil
	e.pairs = e.pairs[:0]
	return e
}

func (f *textEventFactory) ReleaseEvent(e *textEvent) {
	f.pool.Put(e)
}

// textWriter renders a textEvent as a single line: "level: message key=value
// ...", sorted by key for deterministic output (useful in tests that assert
// on log lines).
type textWriter struct {
	mu  sync.Mutex
	out io.Writer
}

func (w *textWriter) Write(e *textEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var b strings.Builder
	b.WriteString(levelName(e.level))
	b.WriteString(": ")
	b.WriteString(e.msg)
	if e.err != nil {
		b.WriteString(": ")
		b.WriteString(e.err.Error())
	}

	fields := append([]textField(nil), e.pairs...)
	sort.Slice(fields, func(i, j int) bool { return fields[i].key < fields[j].key })
	for _, f := range fields {
		b.WriteByte(' ')
		b.WriteString(f.key)
		b.WriteByte('=')
		b.WriteString(f.val)
	}
	b.WriteByte('\n')

	_, err := io.WriteString(w.out, b.String())
	return err
}

func levelName(l logiface.Level) string {
	switch l {
	case logiface.LevelEmergency:
		return "emerg"
	case logiface.LevelAlert:
		return "alert"
	case logiface.LevelCritical:
		return "crit"
	case logiface.LevelError:
		return "error"
	case logiface.LevelWarning:
		return "warn"
	case logiface.LevelNotice:
		return "notice"
	case logiface.LevelInformational:
		return "info"
	case logiface.LevelDebug:
		return "debug"
	case logiface.LevelTrace:
		return "trace"
	default:
		return "disabled"
	}
}

// Logger is the type used throughout the package for diagnostic output
// (source registration, poll errors). It is a thin
// alias over logiface's generified Logger, the way the teacher's own code
// treats its Logger type as the sole logging surface passed around via
// options.
type Logger = logiface.Logger[logiface.Event]

// NewTextLogger builds a Logger that writes human-readable lines to w at
// or above the given level. Passing logiface.LevelDisabled silences output
// entirely; this is the zero-value behavior of a *Context created without
// WithLogger.
func NewTextLogger(w io.Writer, level logiface.Level) *Logger {
	factory := newTextEventFactory()
	l := logiface.New[*textEvent](
		logiface.WithEventFactory[*textEvent](factory),
		logiface.WithEventReleaser[*textEvent](logiface.EventReleaserFunc[*textEvent](factory.ReleaseEvent)),
		logiface.WithWriter[*textEvent](&textWriter{out: w}),
		logiface.WithLevel[*textEvent](level),
	)
	return l.Logger()
}

// defaultLogger discards everything; used when a Context is constructed
// without WithLogger.
func defaultLogger() *Logger {
	return NewTextLogger(os.Stderr, logiface.LevelDisabled)
}
