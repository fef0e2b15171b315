package client

import (
	"context"
	"fmt"

	"github.com/oguzhanozgokce/BootMobileSecure/internal/adapter"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/app"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/logger"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/service"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/state"
	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

// SessionScreen is the state of the session screen.
type SessionScreen struct {
	Session models.SessionState
	Info    models.SessionInfo
	Loading bool

	// User is the logged-in user, once known.
	User *models.User

	// Viewed is the last user fetched by id.
	Viewed *models.User
}

// Action is an input of the session screen.
type Action interface{ action() }

type (
	CheckSession struct{}
	Login        struct{ Request models.LoginRequest }
	Register     struct{ Request models.RegisterRequest }
	Refresh      struct{}
	LoadProfile  struct{}
	LoadUser     struct{ ID int64 }
	DeleteUser   struct{ ID int64 }
	Logout       struct{}
)

func (CheckSession) action() {}
func (Login) action()        {}
func (Register) action()     {}
func (Refresh) action()      {}
func (LoadProfile) action()  {}
func (LoadUser) action()     {}
func (DeleteUser) action()   {}
func (Logout) action()       {}

// Effect is a one-shot output of the session screen.
type Effect interface{ effect() }

type (
	NavigateToLogin struct{}
	NavigateToHome  struct{}
	ShowError       struct {
		Kind    adapter.Kind
		Message string
	}
	ShowSuccess struct{ Message string }
	// Done marks the end of one action's effects.
	Done struct{}
)

func (NavigateToLogin) effect() {}
func (NavigateToHome) effect()  {}
func (ShowError) effect()       {}
func (ShowSuccess) effect()     {}
func (Done) effect()            {}

// SessionModel turns session actions into service calls, state changes and
// effects. Failures of kind Auth always route to the login screen.
type SessionModel struct {
	sessions service.ClientSessionService
	logger   *logger.Logger

	*state.Container[SessionScreen, Action, Effect]
}

func NewSessionModel(sessions service.ClientSessionService, logger *logger.Logger) *SessionModel {
	m := &SessionModel{sessions: sessions, logger: logger}
	m.Container = state.New[SessionScreen, Action, Effect](SessionScreen{}, m.handle, 8)
	return m
}

type scope = state.Scope[SessionScreen, Effect]

func (m *SessionModel) handle(ctx context.Context, a Action, s *scope) {
	defer s.Emit(Done{})

	s.Update(func(st SessionScreen) SessionScreen { st.Loading = true; return st })
	defer s.Update(func(st SessionScreen) SessionScreen { st.Loading = false; return st })

	switch a := a.(type) {
	case CheckSession:
		m.checkSession(ctx, s)
	case Login:
		user, err := m.sessions.Login(ctx, a.Request)
		m.established(ctx, s, user, err)
	case Register:
		user, err := m.sessions.Register(ctx, a.Request)
		m.established(ctx, s, user, err)
	case Refresh:
		user, err := m.sessions.Refresh(ctx)
		if err != nil {
			m.fail(s, err)
			return
		}
		m.loggedIn(ctx, s, user)
		s.Emit(ShowSuccess{Message: app.MsgSessionRefresh})
	case LoadProfile:
		user, err := m.sessions.CurrentUser(ctx)
		if err != nil {
			m.fail(s, err)
			return
		}
		m.loggedIn(ctx, s, user)
	case LoadUser:
		user, err := m.sessions.UserByID(ctx, a.ID)
		if err != nil {
			m.fail(s, err)
			return
		}
		s.Update(func(st SessionScreen) SessionScreen { st.Viewed = &user; return st })
	case DeleteUser:
		if err := m.sessions.DeleteUser(ctx, a.ID); err != nil {
			m.fail(s, err)
			return
		}
		s.Emit(ShowSuccess{Message: app.MsgUserDeleted})
	case Logout:
		m.sessions.Logout(ctx)
		s.Update(func(SessionScreen) SessionScreen { return SessionScreen{Session: models.StateLoggedOut} })
		s.Emit(ShowSuccess{Message: app.MsgLoggedOut})
		s.Emit(NavigateToLogin{})
	default:
		m.logger.Warn().Str("action", fmt.Sprintf("%T", a)).Msg("unhandled action")
	}
}

func (m *SessionModel) checkSession(ctx context.Context, s *scope) {
	if m.sessions.State(ctx) != models.StateLoggedIn {
		s.Update(func(SessionScreen) SessionScreen { return SessionScreen{Session: models.StateLoggedOut} })
		s.Emit(NavigateToLogin{})
		return
	}

	info, _ := m.sessions.SessionInfo(ctx)
	s.Update(func(st SessionScreen) SessionScreen {
		st.Session = models.StateLoggedIn
		st.Info = info
		return st
	})
	s.Emit(NavigateToHome{})
}

func (m *SessionModel) established(ctx context.Context, s *scope, user models.User, err error) {
	if err != nil {
		m.fail(s, err)
		return
	}

	m.loggedIn(ctx, s, user)
	s.Emit(ShowSuccess{Message: fmt.Sprintf(app.MsgWelcomeTemplate, displayName(user))})
	s.Emit(NavigateToHome{})
}

func (m *SessionModel) loggedIn(ctx context.Context, s *scope, user models.User) {
	info, _ := m.sessions.SessionInfo(ctx)
	s.Update(func(st SessionScreen) SessionScreen {
		st.Session = models.StateLoggedIn
		st.Info = info
		st.User = &user
		return st
	})
}

// fail shows err and, for Auth failures, drops to the logged-out screen. The
// credential itself has already been cleared by the pipeline.
func (m *SessionModel) fail(s *scope, err error) {
	kind := adapter.KindOf(err)
	m.logger.Debug().Err(err).Str("kind", kind.String()).Msg("session action failed")

	s.Emit(ShowError{Kind: kind, Message: app.MessageFor(err)})

	if kind == adapter.KindAuth {
		s.Update(func(SessionScreen) SessionScreen { return SessionScreen{Session: models.StateLoggedOut} })
		s.Emit(NavigateToLogin{})
	}
}

func displayName(u models.User) string {
	if name := u.FullName(); name != "" {
		return name
	}
	return u.Username
}

// Do dispatches a and collects the effects it emits. Run must be serving and
// nothing else may read Effects concurrently.
func (m *SessionModel) Do(ctx context.Context, a Action) ([]Effect, error) {
	if err := m.Dispatch(ctx, a); err != nil {
		return nil, err
	}

	var out []Effect
	for {
		select {
		case e, ok := <-m.Effects():
			if !ok {
				return out, state.ErrClosed
			}
			if _, done := e.(Done); done {
				return out, nil
			}
			out = append(out, e)
		case <-ctx.Done():
			return out, ctx.Err()
		}
	}
}
