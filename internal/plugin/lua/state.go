package lua

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/multicaret/internal/engine"
)

// DefaultExecutionTimeout bounds a single DoString or DoFile call.
const DefaultExecutionTimeout = 5 * time.Second

// State is a sandboxed Lua runtime bound to one session.
//
// gopher-lua's LState is not goroutine-safe. The mutex guards calls made
// through State; LuaState bypasses it.
type State struct {
	L *lua.LState

	mu sync.Mutex

	session          *engine.Session
	logger           *zap.Logger
	output           func(string)
	executionTimeout time.Duration

	sandbox *Sandbox
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithLogger sets the logger. Script output from print is logged at info
// level unless WithOutput is given.
func WithLogger(l *zap.Logger) StateOption {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOutput sends each line printed by a script to fn.
func WithOutput(fn func(string)) StateOption {
	return func(s *State) {
		s.output = fn
	}
}

// WithExecutionTimeout sets the deadline for one script run. Zero or less
// disables it.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.executionTimeout = d
	}
}

// NewState creates a sandboxed Lua state with the mc module bound to
// session.
func NewState(session *engine.Session, opts ...StateOption) (*State, error) {
	if session == nil {
		return nil, ErrNilSession
	}

	state := &State{
		session:          session,
		logger:           zap.NewNop(),
		executionTimeout: DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(state)
	}
	state.logger = state.logger.With(zap.String("component", "lua"))
	if state.output == nil {
		logger := state.logger
		state.output = func(line string) {
			logger.Info("script output", zap.String("line", line))
		}
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	state.L = L
	openSafeLibraries(L)

	state.sandbox = NewSandbox(L, state.output)
	state.sandbox.Install()

	mod := NewModule(session).Register(L)
	state.sandbox.Provide(ModuleName, mod)

	return state, nil
}

// openSafeLibraries opens only safe Lua standard libraries. io, os, debug
// and package are never opened.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// DoFile executes a Lua file.
func (s *State) DoFile(path string) error {
	return s.run(path, func() error {
		return s.L.DoFile(path)
	})
}

// DoString executes a Lua chunk.
func (s *State) DoString(code string) error {
	return s.run("<string>", func() error {
		return s.L.DoString(code)
	})
}

// RunScripts executes each file in order. A failing script is logged and
// does not stop the rest; all failures are returned joined.
func (s *State) RunScripts(paths []string) error {
	var errs []error
	for _, p := range paths {
		if err := s.DoFile(p); err != nil {
			s.logger.Warn("script failed", zap.String("script", p), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			continue
		}
		s.logger.Debug("script loaded", zap.String("script", p))
	}
	return errors.Join(errs...)
}

func (s *State) run(name string, fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	ctx := context.Background()
	if s.executionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.executionTimeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	start := time.Now()
	err = fn()
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("%w after %s", ErrExecutionTimeout, s.executionTimeout)
	}
	s.logger.Debug("script run", zap.String("script", name),
		zap.Duration("elapsed", time.Since(start)), zap.Error(err))
	return err
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// Session returns the session scripts operate on.
func (s *State) Session() *engine.Session {
	return s.session
}

// LuaState returns the underlying gopher-lua state.
//
// WARNING: Direct access to LState bypasses the mutex and the sandbox.
func (s *State) LuaState() *lua.LState {
	return s.L
}

// Sandbox returns the sandbox.
func (s *State) Sandbox() *Sandbox {
	return s.sandbox
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases all resources associated with the Lua state.
// After Close is called, all other methods will return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
