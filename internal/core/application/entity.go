package application

import (
	"strings"
	"time"
)

// Status は応募の選考状態を表します。
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// ParseStatus は大文字小文字を区別せずにステータスを解釈します。
func ParseStatus(raw string) (Status, bool) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case StatusPending, StatusAccepted, StatusRejected:
		return status, true
	default:
		return "", false
	}
}

// Application は応募エンティティです。(JobID, ApplicantID) の組は一意です。
type Application struct {
	ID          string
	JobID       string
	ApplicantID string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
	// Job は一覧表示用に結合された求人情報です。結合しない取得では nil です。
	Job *JobSnapshot
	// Applicant は応募者一覧用に結合されたユーザー情報です。
	Applicant *ApplicantSnapshot
}

// JobSnapshot は応募に紐づく求人のスナップショットです。
type JobSnapshot struct {
	ID        string
	Title     string
	CompanyID string
	Company   *CompanySnapshot
}

// CompanySnapshot は求人の掲載元会社のスナップショットです。
type CompanySnapshot struct {
	ID   string
	Name string
	Logo string
}

// ApplicantSnapshot は応募者のスナップショットです。パスワードハッシュは含みません。
type ApplicantSnapshot struct {
	ID           string
	Fullname     string
	Email        string
	PhoneNumber  string
	Bio          string
	Skills       []string
	ProfilePhoto string
}
