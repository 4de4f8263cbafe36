package application

import "errors"

var (
	// ErrApplicationNotFound は応募が存在しない場合に返却されます。
	ErrApplicationNotFound = errors.New("application not found")
	// ErrAlreadyApplied は同じ求人へ同じユーザーが既に応募している場合に返却されます。
	ErrAlreadyApplied = errors.New("you have already applied for this job")
	// ErrInvalidStatus はステータスが不正な場合に返却されます。
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = errors.New("invalid id")
	// ErrApplicantNotFound は応募者が存在しない場合に返却されます。
	ErrApplicantNotFound = errors.New("applicant not found")
	// ErrTransitionNotAllowed はステータス遷移がポリシーで禁止されている場合に返却されます。
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
)
