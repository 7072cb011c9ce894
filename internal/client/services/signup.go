package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/somapoll/internal/client/client"
	"github.com/dmitrijs2005/somapoll/internal/client/models"
)

// cleanupTimeout bounds the compensating cleanup call once the caller's
// context has been detached.
const cleanupTimeout = 10 * time.Second

type signupStep int

const (
	stepRegistering signupStep = iota
	stepVerifying
	stepLoggingIn
	stepDone
)

func (s signupStep) String() string {
	switch s {
	case stepRegistering:
		return "registering"
	case stepVerifying:
		return "verifying"
	case stepLoggingIn:
		return "logging-in"
	case stepDone:
		return "done"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// stepOutcome is what a step hands back to the saga loop. A terminal outcome
// carries the Result; compensate asks for the registration to be rolled back
// before that Result is returned.
type stepOutcome struct {
	next       signupStep
	terminal   bool
	compensate bool
	result     models.Result
}

func proceed(next signupStep) stepOutcome {
	return stepOutcome{next: next}
}

func finish(r models.Result) stepOutcome {
	return stepOutcome{next: stepDone, terminal: true, result: r}
}

func rollback(r models.Result) stepOutcome {
	return stepOutcome{next: stepDone, terminal: true, compensate: true, result: r}
}

// signupSaga drives Registering -> Verifying -> LoggingIn -> Done. Failures
// in Verifying and LoggingIn run the cleanup once before the Result is
// returned.
type signupSaga struct {
	auth    *authService
	req     SignupRequest
	step    signupStep
	cleaned bool
}

func newSignupSaga(a *authService, req SignupRequest) *signupSaga {
	return &signupSaga{auth: a, req: req, step: stepRegistering}
}

func (s *signupSaga) run(ctx context.Context) models.Result {
	for {
		s.auth.log.Debug(ctx, "signup step", "op", "signup", "step", s.step.String())

		var out stepOutcome
		switch s.step {
		case stepRegistering:
			out = s.register(ctx)
		case stepVerifying:
			out = s.verify(ctx)
		case stepLoggingIn:
			out = s.login(ctx)
		default:
			return models.Result{Success: false, Message: msgSignupFailed}
		}

		if out.compensate {
			s.cleanup(ctx)
		}
		s.step = out.next
		if out.terminal {
			return out.result
		}
	}
}

func (s *signupSaga) register(ctx context.Context) stepOutcome {
	const op = "signup"

	_, err := s.auth.client.Signup(ctx, client.SignupRequest{
		Username:  s.req.Username,
		Email:     s.req.Email,
		Password:  s.req.Password,
		FullName:  s.req.FullName,
		Structure: s.req.Structure,
	})
	if err != nil {
		s.auth.logFailure(ctx, op, err)
		return finish(models.Result{Success: false, Message: failureMessage(err, msgSignupFailed)})
	}
	return proceed(stepVerifying)
}

func (s *signupSaga) verify(ctx context.Context) stepOutcome {
	const op = "verify-signup"

	if err := s.auth.client.VerifySignup(ctx, s.req.Email); err != nil {
		s.auth.logFailure(ctx, op, err)
		return rollback(models.Result{Success: false, Message: msgSignupUnverified})
	}
	return proceed(stepLoggingIn)
}

func (s *signupSaga) login(ctx context.Context) stepOutcome {
	res, err := s.attemptLogin(ctx)
	if err != nil {
		s.auth.log.Error(ctx, "login after signup aborted", "op", "signup", "error", err)
		return rollback(models.Result{Success: false, Message: msgSignupLoginInterrupted})
	}
	if !res.Success {
		// the real cause is in res.Message; the user sees the historic text
		s.auth.log.Warn(ctx, "login after signup failed", "op", "signup", "reason", res.Message)
		return rollback(models.Result{Success: false, Message: msgSignupUserExists})
	}
	return finish(res)
}

// attemptLogin runs Login, turning a panic or a cancelled context into an
// error.
func (s *signupSaga) attemptLogin(ctx context.Context) (res models.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("login panicked: %v", p)
		}
	}()

	res = s.auth.Login(ctx, s.req.Email, s.req.Password)
	if !res.Success {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
	}
	return res, nil
}

// cleanup asks the backend to drop the partial registration. It runs at most
// once per saga on a context detached from the caller's cancellation, and its
// outcome is only logged.
func (s *signupSaga) cleanup(ctx context.Context) {
	if s.cleaned {
		return
	}
	s.cleaned = true

	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := s.auth.client.CleanupSignup(cctx, s.req.Email); err != nil {
		s.auth.log.Warn(ctx, "signup cleanup failed", "op", "cleanup-signup", "error", err)
		return
	}
	s.auth.log.Info(ctx, "partial signup cleaned up", "op", "cleanup-signup")
}
