package account

import (
	"strings"
	"time"
)

// Role はユーザーの種別を表します。
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleRecruiter Role = "recruiter"
)

// ParseRole は大文字小文字を区別せずにロールを解釈します。
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	switch role {
	case RoleApplicant, RoleRecruiter:
		return role, true
	default:
		return "", false
	}
}

// Profile はユーザーの公開プロフィールです。
type Profile struct {
	Bio          string
	Skills       []string
	ProfilePhoto string
}

// User はユーザーエンティティです。PasswordHash は外部へ公開しません。
type User struct {
	ID           string
	Fullname     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Role         Role
	Profile      Profile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Sanitized はパスワードハッシュを除いたコピーを返します。
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	clone.Profile.Skills = append([]string(nil), u.Profile.Skills...)
	return &clone
}

// Session はログイン成功時に発行されるセッションです。
type Session struct {
	User      *User
	Token     string
	ExpiresAt time.Time
}
