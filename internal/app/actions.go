package app

import (
	"fmt"

	"github.com/evcraddock/museum-visit/internal/navigation"
	"github.com/evcraddock/museum-visit/internal/profile"
	"github.com/evcraddock/museum-visit/internal/validate"
)

// Navigate follows a link from the current page.
func (a *App) Navigate(to navigation.Page) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	from := a.nav.Page
	if err := a.nav.Follow(to); err != nil {
		return err
	}
	a.leftLocked(from)
	return nil
}

// Back returns to the parent of the current page.
func (a *App) Back() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	from := a.nav.Page
	if err := a.nav.Back(); err != nil {
		return err
	}
	a.leftLocked(from)
	return nil
}

// OpenActivity shows an activity's detail page.
func (a *App) OpenActivity(id int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	if _, err := a.opts.Catalog.Activity(id); err != nil {
		return err
	}
	from := a.nav.Page
	if err := a.nav.OpenActivity(id); err != nil {
		return err
	}
	a.leftLocked(from)
	return nil
}

// OpenAnnouncement shows an announcement's detail page.
func (a *App) OpenAnnouncement(id int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	if _, err := a.opts.Catalog.Announcement(id); err != nil {
		return err
	}
	from := a.nav.Page
	if err := a.nav.OpenAnnouncement(id); err != nil {
		return err
	}
	a.leftLocked(from)
	return nil
}

// leftLocked runs after every page change made by the user. Leaving a page
// cancels its scheduled transition and closes its dialogs.
func (a *App) leftLocked(from navigation.Page) {
	a.cancelLocked()
	a.editing = 0
	a.passwordOpen = false
	a.visitors.CancelRemoval()
	a.records.Reset()
	a.logger.Debug("navigated", "from", from, "to", a.nav.Page)
}

// Login accepts any non-empty credentials and moves to home once the
// success toast has been shown.
func (a *App) Login(f validate.LoginForm) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	if err := a.requirePage(navigation.Login); err != nil {
		return err
	}
	if err := validate.Login(f); err != nil {
		return a.fail(err)
	}

	a.succeed("登录成功！", a.opts.Delays.Login)
	a.scheduleLocked(a.opts.Delays.Login, func() {
		if err := a.nav.SignIn(f.Username); err != nil {
			a.logger.Error("signing in", "error", err)
			return
		}
		a.profile.Username = f.Username
		a.password = f.Password
		a.logger.Info("signed in", "username", f.Username)
	})
	return nil
}

// Register validates the registration form and returns to login. Nothing
// is stored.
func (a *App) Register(f validate.RegisterForm) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	if err := a.requirePage(navigation.Register); err != nil {
		return err
	}
	if err := validate.Register(f); err != nil {
		return a.fail(err)
	}

	a.succeed("注册成功！即将跳转到登录页面...", a.opts.Delays.Register)
	a.scheduleLocked(a.opts.Delays.Register, func() {
		if err := a.nav.Complete(navigation.Login); err != nil {
			a.logger.Error("completing registration", "error", err)
		}
	})
	return nil
}

// ProfileInput is the edit-profile submission.
type ProfileInput struct {
	Username string
	Gender   profile.Gender
	Phone    string
	Avatar   string
}

// SaveProfile replaces the profile at once and returns to the profile page
// after the success toast.
func (a *App) SaveProfile(in ProfileInput) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	if err := a.requirePage(navigation.EditProfile); err != nil {
		return err
	}
	if err := validate.Profile(validate.ProfileForm{Username: in.Username, Phone: in.Phone}); err != nil {
		return a.fail(err)
	}
	if !in.Gender.IsValid() {
		return a.fail(&validate.Error{Kind: validate.MissingField, Field: validate.FieldGender, Message: "请选择性别"})
	}
	if !profile.IsAvatar(in.Avatar) {
		return a.fail(&validate.Error{Kind: validate.MissingField, Field: validate.FieldAvatar, Message: "请选择头像"})
	}

	a.profile = profile.UserProfile{
		Username: in.Username,
		Gender:   in.Gender,
		Phone:    in.Phone,
		Avatar:   in.Avatar,
	}
	a.nav.Username = in.Username
	a.logger.Info("profile saved", "username", in.Username)

	a.succeed("个人信息修改成功！", a.opts.Delays.ProfileSave)
	a.scheduleLocked(a.opts.Delays.ProfileSave, func() {
		if err := a.nav.Complete(navigation.Profile); err != nil {
			a.logger.Error("leaving edit profile", "error", err)
		}
	})
	return nil
}

// OpenPasswordModal shows the change-password dialog.
func (a *App) OpenPasswordModal() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	if err := a.requirePage(navigation.EditProfile); err != nil {
		return err
	}
	a.passwordOpen = true
	return nil
}

// ClosePasswordModal hides the change-password dialog.
func (a *App) ClosePasswordModal() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.passwordOpen = false
}

// ChangePassword validates the change-password dialog. When the policy asks
// for it, the old password must match the one given at login.
func (a *App) ChangePassword(f validate.PasswordForm) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	if err := a.requirePage(navigation.EditProfile); err != nil {
		return err
	}
	if !a.passwordOpen {
		return fmt.Errorf("%w: password dialog is closed", ErrWrongPage)
	}
	if err := validate.ChangePassword(f); err != nil {
		return a.fail(err)
	}
	if a.opts.Policy.VerifyOldPassword && f.Old != a.password {
		return a.fail(&validate.Error{Kind: validate.Mismatch, Field: validate.FieldOldPassword, Message: "原密码错误"})
	}

	a.password = f.New
	a.passwordOpen = false
	a.succeed("密码修改成功！", a.opts.Delays.ProfileSave)
	return nil
}

// Logout clears the signed-in user and returns to the welcome page.
func (a *App) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()

	from := a.nav.Page
	user := a.nav.Username
	a.nav.SignOut()
	a.password = ""
	a.leftLocked(from)
	a.logger.Info("signed out", "username", user)
}
