package validate

import "github.com/evcraddock/museum-visit/internal/profile"

// Field names reported in Error.Field.
const (
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldGender          = "gender"
	FieldAvatar          = "avatar"
	FieldPhone           = "phone"
	FieldOldPassword     = "old_password"
	FieldNewPassword     = "new_password"
	FieldConfirmNew      = "confirm_new_password"
	FieldName            = "name"
	FieldIDCard          = "id_card"
)

const (
	msgUsername        = "请输入用户名"
	msgPassword        = "请输入密码"
	msgGender          = "请选择性别"
	msgAvatar          = "请选择头像"
	msgPhone           = "请输入手机号"
	msgPhoneLength     = "请输入11位手机号"
	msgPasswordLength  = "密码长度至少6位"
	msgConfirmPassword = "请确认密码"
	msgPasswordMatch   = "两次密码输入不一致"
	msgOldPassword     = "请输入原密码"
	msgNewPassword     = "请输入新密码"
	msgNewLength       = "新密码长度至少6位"
	msgConfirmNew      = "请确认新密码"
	msgIncomplete      = "请填写完整信息"
)

// LoginForm is the login screen input.
type LoginForm struct {
	Username string
	Password string
}

// Login validates the login form. No credential is checked.
func Login(f LoginForm) error {
	return first(
		required(FieldUsername, f.Username, msgUsername),
		required(FieldPassword, f.Password, msgPassword),
	)
}

// RegisterForm is the registration screen input.
type RegisterForm struct {
	Username        string
	Gender          string
	Avatar          string
	Phone           string
	Password        string
	ConfirmPassword string
}

// Register validates the registration form.
func Register(f RegisterForm) error {
	return first(
		required(FieldUsername, f.Username, msgUsername),
		required(FieldGender, f.Gender, msgGender),
		allowed(FieldGender, profile.Gender(f.Gender).IsValid(), msgGender),
		required(FieldAvatar, f.Avatar, msgAvatar),
		allowed(FieldAvatar, profile.IsAvatar(f.Avatar), msgAvatar),
		required(FieldPhone, f.Phone, msgPhone),
		exactLength(FieldPhone, f.Phone, PhoneLength, msgPhoneLength),
		required(FieldPassword, f.Password, msgPassword),
		minLength(FieldPassword, f.Password, MinPasswordLength, msgPasswordLength),
		required(FieldConfirmPassword, f.ConfirmPassword, msgConfirmPassword),
		equal(FieldConfirmPassword, f.ConfirmPassword, f.Password, msgPasswordMatch),
	)
}

// ProfileForm is the edit-profile input. Gender and avatar are picked from
// fixed options and always carry a value.
type ProfileForm struct {
	Username string
	Phone    string
}

// Profile validates the edit-profile form.
func Profile(f ProfileForm) error {
	return first(
		required(FieldUsername, f.Username, msgUsername),
		required(FieldPhone, f.Phone, msgPhone),
		exactLength(FieldPhone, f.Phone, PhoneLength, msgPhoneLength),
	)
}

// PasswordForm is the change-password modal input.
type PasswordForm struct {
	Old     string
	New     string
	Confirm string
}

// ChangePassword validates the change-password form. The old password is
// only checked for presence here.
func ChangePassword(f PasswordForm) error {
	return first(
		required(FieldOldPassword, f.Old, msgOldPassword),
		required(FieldNewPassword, f.New, msgNewPassword),
		minLength(FieldNewPassword, f.New, MinPasswordLength, msgNewLength),
		required(FieldConfirmNew, f.Confirm, msgConfirmNew),
		equal(FieldConfirmNew, f.Confirm, f.New, msgPasswordMatch),
	)
}

// VisitorForm is the add-visitor and edit-visitor input.
type VisitorForm struct {
	Name   string
	Phone  string
	IDCard string
}

// Visitor validates the add-visitor and edit-visitor forms. Every missing
// field reports the same message; Field names the first one.
func Visitor(f VisitorForm) error {
	return first(
		required(FieldName, f.Name, msgIncomplete),
		required(FieldPhone, f.Phone, msgIncomplete),
		required(FieldIDCard, f.IDCard, msgIncomplete),
	)
}
