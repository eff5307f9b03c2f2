package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/lumine-engine/lumine/engine/core"
)

type callRecorder struct {
	calls []string
}

func (r *callRecorder) record(name string) {
	r.calls = append(r.calls, name)
}

func (r *callRecorder) indexOf(name string) int {
	for i, c := range r.calls {
		if c == name {
			return i
		}
	}
	return -1
}

type fakeWindow struct {
	rec         *callRecorder
	pumpsLeft   int
	failStartup bool
	onPump      func()
}

func (w *fakeWindow) Startup(name string, x, y, width, height uint32) error {
	w.rec.record("window.startup")
	if w.failStartup {
		return errors.New("no display")
	}
	return nil
}

func (w *fakeWindow) PumpMessages() bool {
	if w.onPump != nil {
		w.onPump()
	}
	w.pumpsLeft--
	return w.pumpsLeft >= 0
}

func (w *fakeWindow) Shutdown() error {
	w.rec.record("window.shutdown")
	return nil
}

type fakeBackend struct {
	rec    *callRecorder
	id     uuid.UUID
	failAt string
}

func newFakeBackend(rec *callRecorder) *fakeBackend {
	return &fakeBackend{rec: rec, id: uuid.New()}
}

func (b *fakeBackend) ID() uuid.UUID {
	return b.id
}

func (b *fakeBackend) step(name string) error {
	b.rec.record(name)
	if b.failAt == name {
		return fmt.Errorf("%s rejected", name)
	}
	return nil
}

func (b *fakeBackend) CreateInstance(appName string, appWidth, appHeight uint32) error {
	return b.step("backend.instance")
}

func (b *fakeBackend) PickPhysicalDevice() error {
	return b.step("backend.pick")
}

func (b *fakeBackend) CreateLogicalDevice() error {
	return b.step("backend.device")
}

func (b *fakeBackend) Shutdown() error {
	b.rec.record("backend.shutdown")
	return nil
}

func newTestEngine(rec *callRecorder, win *fakeWindow, backend *fakeBackend) *Engine {
	return newEngine(DefaultConfig(), win, backend)
}

func TestInitializeRunsStepsInOrder(t *testing.T) {
	rec := &callRecorder{}
	e := newTestEngine(rec, &fakeWindow{rec: rec}, newFakeBackend(rec))

	if err := e.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Stage() != StageDeviceReady {
		t.Fatalf("expected StageDeviceReady, got %d", e.Stage())
	}

	want := []string{"window.startup", "backend.instance", "backend.pick", "backend.device"}
	for i, name := range want {
		if rec.calls[i] != name {
			t.Fatalf("call %d = %s, want %s (all: %v)", i, rec.calls[i], name, rec.calls)
		}
	}

	if err := e.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Stage() != StageTerminated {
		t.Fatalf("expected StageTerminated, got %d", e.Stage())
	}
}

func TestInitializeIsNotReentrant(t *testing.T) {
	rec := &callRecorder{}
	e := newTestEngine(rec, &fakeWindow{rec: rec}, newFakeBackend(rec))

	if err := e.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer e.Shutdown()

	if err := e.Initialize(); err == nil {
		t.Fatal("second Initialize must fail")
	}
}

func TestTeardownOrderOnCleanRun(t *testing.T) {
	rec := &callRecorder{}
	e := newTestEngine(rec, &fakeWindow{rec: rec, pumpsLeft: 3}, newFakeBackend(rec))

	if err := e.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if e.Stage() != StageTerminated {
		t.Fatalf("expected StageTerminated, got %d", e.Stage())
	}
	// Device before instance is internal to the backend; here the contract is
	// backend (device+instance) before window.
	if rec.indexOf("backend.shutdown") == -1 || rec.indexOf("window.shutdown") == -1 {
		t.Fatalf("missing teardown calls: %v", rec.calls)
	}
	if rec.indexOf("backend.shutdown") > rec.indexOf("window.shutdown") {
		t.Fatalf("backend must shut down before the window: %v", rec.calls)
	}
}

func TestTeardownStillRunsWhenDeviceCreationFails(t *testing.T) {
	rec := &callRecorder{}
	backend := newFakeBackend(rec)
	backend.failAt = "backend.device"
	e := newTestEngine(rec, &fakeWindow{rec: rec}, backend)

	err := e.Initialize()
	if err == nil {
		t.Fatal("expected device creation failure")
	}
	if e.Stage() != StageTerminated {
		t.Fatalf("expected StageTerminated after failed setup, got %d", e.Stage())
	}

	bi := rec.indexOf("backend.shutdown")
	wi := rec.indexOf("window.shutdown")
	if bi == -1 || wi == -1 {
		t.Fatalf("teardown skipped after failure: %v", rec.calls)
	}
	if bi > wi {
		t.Fatalf("backend must shut down before the window: %v", rec.calls)
	}
}

func TestSelectionFailureStopsSetup(t *testing.T) {
	rec := &callRecorder{}
	backend := newFakeBackend(rec)
	backend.failAt = "backend.pick"
	e := newTestEngine(rec, &fakeWindow{rec: rec}, backend)

	if err := e.Initialize(); err == nil {
		t.Fatal("expected selection failure")
	}
	if rec.indexOf("backend.device") != -1 {
		t.Fatalf("logical device creation must not run after selection failed: %v", rec.calls)
	}
}

func TestWindowFailureSkipsBackendSetup(t *testing.T) {
	rec := &callRecorder{}
	e := newTestEngine(rec, &fakeWindow{rec: rec, failStartup: true}, newFakeBackend(rec))

	if err := e.Initialize(); err == nil {
		t.Fatal("expected window startup failure")
	}
	if rec.indexOf("backend.instance") != -1 {
		t.Fatalf("backend setup must not run without a window: %v", rec.calls)
	}
	if e.Stage() != StageTerminated {
		t.Fatalf("expected StageTerminated, got %d", e.Stage())
	}
}

func TestRunRequiresDeviceReady(t *testing.T) {
	rec := &callRecorder{}
	e := newTestEngine(rec, &fakeWindow{rec: rec}, newFakeBackend(rec))

	if err := e.Run(); err == nil {
		t.Fatal("Run before Initialize must fail")
	}
}

// A stop request arriving between Initialize and Run, as a signal handler
// delivers it, must not be lost: Run tears down without pumping a single
// frame.
func TestStopBeforeRunSkipsTheLoop(t *testing.T) {
	rec := &callRecorder{}
	pumps := 0
	win := &fakeWindow{rec: rec, pumpsLeft: 1 << 30}
	win.onPump = func() { pumps++ }
	e := newTestEngine(rec, win, newFakeBackend(rec))

	if err := e.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e.Stop()
	if err := e.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pumps != 0 {
		t.Fatalf("pumped %d frames after a stop request, want 0", pumps)
	}
	if e.Stage() != StageTerminated {
		t.Fatalf("expected StageTerminated, got %d", e.Stage())
	}
	if rec.indexOf("backend.shutdown") == -1 || rec.indexOf("window.shutdown") == -1 {
		t.Fatalf("teardown skipped: %v", rec.calls)
	}
}

func TestRunStopsOnQuitEvent(t *testing.T) {
	rec := &callRecorder{}
	win := &fakeWindow{rec: rec, pumpsLeft: 1 << 30}
	win.onPump = func() {
		core.EventFire(core.EVENT_CODE_APPLICATION_QUIT, nil, core.EventContext{})
	}
	e := newTestEngine(rec, win, newFakeBackend(rec))

	if err := e.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Stage() != StageTerminated {
		t.Fatalf("expected StageTerminated, got %d", e.Stage())
	}
}

func TestEscapeKeyFiresQuit(t *testing.T) {
	rec := &callRecorder{}
	win := &fakeWindow{rec: rec, pumpsLeft: 1 << 30}
	win.onPump = func() {
		core.InputProcessKey(core.KEY_ESCAPE, true)
	}
	e := newTestEngine(rec, win, newFakeBackend(rec))

	if err := e.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Stage() != StageTerminated {
		t.Fatalf("expected StageTerminated, got %d", e.Stage())
	}
}
