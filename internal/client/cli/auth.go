package cli

import (
	"context"

	"github.com/dmitrijs2005/arnorgym/internal/client/services"
)

// Login shows the login form and submits it.
func (a *App) Login(ctx context.Context) error {
	a.setMode(ModeLogin)
	return a.Submit(ctx)
}

// Register shows the registration form and submits it.
func (a *App) Register(ctx context.Context) error {
	a.setMode(ModeRegister)
	return a.Submit(ctx)
}

// Submit prompts for the fields of the form currently shown and submits it.
func (a *App) Submit(ctx context.Context) error {
	if u := a.currentUser(); u != "" {
		a.info("Already logged in as %s, type 'logout' first", u)
		return nil
	}
	if a.currentMode() == ModeRegister {
		return a.submitRegister(ctx)
	}
	return a.submitLogin(ctx)
}

func (a *App) submitLogin(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	s, err := a.auth.Login(ctx, username, password)
	if err != nil {
		a.log.Debug(ctx, "login rejected", "username", username, "error", err)
		a.fail(err, "login failed, please try again later")
		return err
	}

	a.setSession(s)
	a.success("Welcome back, %s!\nLogin successful, redirecting...", s.Username)

	p, ok := a.auth.Profile(ctx)
	if !ok || p.Session.ID != s.ID {
		p = services.Profile{Session: s}
	}
	a.sched.after(ctx, a.config.RedirectDelay, "redirect", func() { a.redirect(p) })
	return nil
}

// redirect shows the dashboard unless the session it was scheduled for has
// ended in the meantime.
func (a *App) redirect(p services.Profile) {
	if !a.isCurrentSession(p.Session.ID) {
		return
	}
	printlnFn(renderDashboard(p))
}

func (a *App) submitRegister(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}

	if err := a.auth.Register(ctx, username, password, confirm, email); err != nil {
		a.fail(err, "registration failed, please try again later")
		return err
	}

	a.success("Registration successful! Welcome to ARNOR GYM, %s", username)
	a.sched.after(ctx, a.config.ModeSwitchDelay, "mode-switch", func() {
		if a.currentUser() == "" && a.setMode(ModeLogin) {
			a.showForm()
		}
	})
	return nil
}

// Toggle switches between the login and registration forms.
func (a *App) Toggle(_ context.Context) error {
	if a.currentMode() == ModeLogin {
		a.setMode(ModeRegister)
	} else {
		a.setMode(ModeLogin)
	}
	a.showForm()
	return nil
}

func (a *App) showForm() {
	if a.currentMode() == ModeRegister {
		a.info("Registration form: type 'submit' to enter username, email, password and confirmation.\nAlready a member? Type 'toggle' to log in.")
		return
	}
	a.info("Login form: type 'submit' to enter username and password.\nNo account yet? Type 'toggle' to register.")
}

// Forgot looks up the email registered for a username. An empty username
// cancels silently.
func (a *App) Forgot(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter your username", a.out)
	if err != nil {
		return err
	}
	if username == "" {
		return nil
	}

	email, err := a.auth.ForgotPassword(ctx, username)
	if err != nil {
		a.fail(err, "lookup failed")
		return err
	}
	a.info("Account: %s\nRegistered email: %s\nPlease contact an administrator to reset your password", username, email)
	return nil
}

// Dashboard shows the member dashboard of the current session.
func (a *App) Dashboard(ctx context.Context) error {
	p, ok := a.auth.Profile(ctx)
	if !ok {
		a.info("Not logged in")
		return nil
	}
	printlnFn(renderDashboard(p))
	return nil
}

// Logout ends the session and returns to the login form.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.info("Not logged in")
		return nil
	}
	if err := a.auth.Logout(ctx); err != nil {
		a.fail(err, "logout failed")
		return err
	}
	a.clearSession()
	a.setMode(ModeLogin)
	a.success("Logged out")
	a.showForm()
	return nil
}
